package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/scene-runtime/abi"
	"github.com/wippyai/scene-runtime/abi/native"
	"github.com/wippyai/scene-runtime/config"
	"github.com/wippyai/scene-runtime/container"
	"github.com/wippyai/scene-runtime/gpu/opengl"
	"github.com/wippyai/scene-runtime/symbols"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func readContainer(path string) (*container.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}
	defer f.Close()
	return container.Decode(bufio.NewReader(f))
}

func heading(s string, styled bool) string {
	if styled {
		return headingStyle.Render(s)
	}
	return s
}

func objectSummary(o *container.Object) string {
	return fmt.Sprintf("code %d, data %d, global %d, publics %d, relocations %d external / %d internal",
		len(o.Code), len(o.Data), o.GlobalSize, len(o.Publics),
		len(o.Relocations.External), len(o.Relocations.Internal))
}

// inspect prints every record of f. Skipped records are listed by index.
func inspect(w io.Writer, f *container.File, styled bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, heading(fmt.Sprintf("Textures (%d)", len(f.Textures)), styled))
	for i := range f.Textures {
		t := &f.Textures[i]
		if t.Skipped() {
			fmt.Fprintf(bw, "  #%d skipped\n", i)
			continue
		}
		fmt.Fprintf(bw, "  %s %s: %s\n", t.Name, abi.AttributeType(t.Type), objectSummary(&t.Object))
	}

	fmt.Fprintln(bw, heading(fmt.Sprintf("Scenes (%d)", len(f.Scenes)), styled))
	for i := range f.Scenes {
		s := &f.Scenes[i]
		if s.Skipped() {
			fmt.Fprintf(bw, "  #%d skipped\n", i)
			continue
		}
		fmt.Fprintf(bw, "  %s: %s, instance %d\n", s.Name, objectSummary(&s.Object), s.InstanceSize)
		fmt.Fprintf(bw, "    nodes %d, bindings %d, objects %d\n", len(s.Nodes), len(s.TextureBindings), len(s.Objects))
		for _, a := range s.Attributes {
			line := fmt.Sprintf("    attribute %s %s @%d", a.Name, abi.AttributeType(a.Type), a.Offset)
			if a.Semantic != "" {
				line += " (" + a.Semantic + ")"
			}
			fmt.Fprintln(bw, line)
		}
		for _, set := range s.AttributeSets {
			fmt.Fprintf(bw, "    set %s @%d tracks %d\n", set.Name, set.Offset, set.NumTracks)
			lo := int(set.ClipIndex)
			hi := min(lo+int(set.NumClips), len(s.Clips))
			for _, c := range s.Clips[min(lo, hi):hi] {
				fmt.Fprintf(bw, "      clip %s index %d length %g\n", c.Name, c.Index, c.Length)
			}
		}
	}
	return bw.Flush()
}

// hostTable resolves the host functions plus gl. A configured stack
// probe name is added as an alias of the platform probe.
func hostTable(cfg *config.Config, gl []symbols.Symbol) *symbols.Table {
	var b symbols.Builder
	probe := native.HostStackProbe()
	b.AddAll(native.HostSymbols()).AddAll(gl).StackProbe(probe)
	if cfg.StackProbe != "" {
		b.Add(cfg.StackProbe, probe)
	}
	return b.Build()
}

// availableSymbols is the table a load would link against, with GL entry
// points assumed present since no context is created.
func availableSymbols(cfg *config.Config) *symbols.Table {
	names := opengl.EntryPoints()
	gl := make([]symbols.Symbol, len(names))
	for i, name := range names {
		gl[i] = symbols.Symbol{Name: name, Addr: 1}
	}
	return hostTable(cfg, gl)
}

// externals returns the sorted external symbols referenced by the
// records of f and the assets using each.
func externals(f *container.File) ([]string, map[string][]string) {
	users := make(map[string][]string)
	add := func(asset string, o *container.Object) {
		for _, name := range o.Relocations.Names {
			if !slices.Contains(users[name], asset) {
				users[name] = append(users[name], asset)
			}
		}
	}
	for i := range f.Textures {
		if t := &f.Textures[i]; !t.Skipped() {
			add(t.Name, &t.Object)
		}
	}
	for i := range f.Scenes {
		if s := &f.Scenes[i]; !s.Skipped() {
			add(s.Name, &s.Object)
		}
	}
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, users
}

// checkSymbols lists every external symbol of f and whether r resolves
// it. It returns the number of unresolved symbols.
func checkSymbols(w io.Writer, f *container.File, r symbols.Resolver) int {
	names, users := externals(f)
	missing := 0
	for _, name := range names {
		status := "ok"
		if _, ok := r.Lookup(name); !ok {
			status = missingStyle.Render("missing")
			missing++
		}
		fmt.Fprintf(w, "%-32s %-8s %s\n", name, status, strings.Join(users[name], ", "))
	}
	fmt.Fprintf(w, "%d symbols, %d unresolved\n", len(names), missing)
	return missing
}
