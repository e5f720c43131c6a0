/*
Copyright (c) the pico-marine/telemetry authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package observer

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Renderer writes Diffs to an io.Writer, either as a textual log
// (colorized when the fd given to NewRenderer is a terminal) or as
// one-line JSON.
type Renderer struct {
	w      io.Writer
	isTerm bool

	old    *color.Color
	new    *color.Color
	header *color.Color
}

// NewRenderer returns a Renderer writing to w. Color is enabled only
// when fd, if nonzero, refers to a terminal; pass 0 (or any non-tty fd)
// to force plain output, matching the source's USE_COLOR = isatty check.
func NewRenderer(w io.Writer, fd uintptr) *Renderer {
	isTerm := fd != 0 && term.IsTerminal(int(fd))
	r := &Renderer{
		w:      w,
		isTerm: isTerm,
		old:    color.New(color.FgRed),
		new:    color.New(color.FgGreen),
		header: color.New(color.FgYellow),
	}
	r.old.EnableColor()
	r.new.EnableColor()
	r.header.EnableColor()
	if !isTerm {
		r.old.DisableColor()
		r.new.DisableColor()
		r.header.DisableColor()
	}
	return r
}

func formatObject(obj Object) string {
	typeName := fmt.Sprintf("%T", obj)
	if idx := strings.LastIndex(typeName, "."); idx != -1 {
		typeName = typeName[idx+1:]
	}
	typeName = strings.TrimPrefix(typeName, "*")

	attrs := obj.Attrs()
	parts := []string{typeName}
	if id, ok := attrs["id"]; ok {
		parts = append(parts, fmt.Sprintf("#%v", id))
	}
	if name, ok := attrs["name"].(string); ok && name != "" {
		parts = append(parts, fmt.Sprintf("%q", name))
	}
	if typ, ok := attrs["type"]; ok {
		parts = append(parts, fmt.Sprintf("(type=%v)", typ))
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string][2]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderText writes diff as the textual change log, colorized when the
// Renderer was built against a terminal.
func (r *Renderer) RenderText(diff Diff, obj Object) {
	fmt.Fprintln(r.w, "==== object change ====")
	fmt.Fprintf(r.w, "object: %s\n", formatObject(obj))
	fmt.Fprintf(r.w, "time  : %s\n", diff.Timestamp.Format("15:04:05"))

	for _, key := range sortedKeys(diff.Changes) {
		pair := diff.Changes[key]
		fmt.Fprintf(r.w, "  %-30s %s -> %s\n", key, r.old.Sprint(pair[0]), r.new.Sprint(pair[1]))
	}

	if len(diff.Unchanged) > 0 {
		fmt.Fprintln(r.w, r.header.Sprint("  ---- unchanged ----"))
		keys := make([]string, 0, len(diff.Unchanged))
		for k := range diff.Unchanged {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(r.w, "  %-30s %v\n", key, diff.Unchanged[key])
		}
	}

	if diff.Hints != nil {
		fmt.Fprintln(r.w, r.header.Sprint("  ---- hints ----"))
		for _, key := range sortedKeys(diff.Changes) {
			if hint, ok := diff.Hints[key]; ok {
				fmt.Fprintf(r.w, "  %-30s %s\n", key, hint)
			}
		}
	}
}

type jsonChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

type jsonObject struct {
	Class string `json:"class"`
	ID    any    `json:"id,omitempty"`
	Name  any    `json:"name,omitempty"`
	Type  any    `json:"type,omitempty"`
}

type jsonDiff struct {
	Timestamp time.Time             `json:"timestamp"`
	Object    jsonObject            `json:"object"`
	Changed   map[string]jsonChange `json:"changed"`
	Unchanged map[string]any        `json:"unchanged,omitempty"`
	Hints     map[string]string     `json:"hints,omitempty"`
}

// RenderJSON writes diff as a single line of JSON, one object per call.
func (r *Renderer) RenderJSON(diff Diff, obj Object) error {
	typeName := fmt.Sprintf("%T", obj)
	if idx := strings.LastIndex(typeName, "."); idx != -1 {
		typeName = typeName[idx+1:]
	}

	changed := make(map[string]jsonChange, len(diff.Changes))
	for k, pair := range diff.Changes {
		changed[k] = jsonChange{Old: pair[0], New: pair[1]}
	}

	attrs := obj.Attrs()
	out := jsonDiff{
		Timestamp: diff.Timestamp,
		Object: jsonObject{
			Class: strings.TrimPrefix(typeName, "*"),
			ID:    attrs["id"],
			Name:  attrs["name"],
			Type:  attrs["type"],
		},
		Changed:   changed,
		Unchanged: diff.Unchanged,
		Hints:     diff.Hints,
	}

	enc := json.NewEncoder(r.w)
	return enc.Encode(out)
}
