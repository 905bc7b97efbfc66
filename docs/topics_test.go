package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Code blocks with these info strings are executed by TestCodeBlocks.
const (
	bashSetup    = "bash setup"    // starts a scenario in a new folder
	bashRun      = "bash run"      // output is checked by the next console check
	consoleCheck = "console check" // expected output of the last bash run
	bashCheck    = "bash check"    // must exit 0
)

// indexedTopics returns the topics listed as "* name: description" in the index.
func indexedTopics(t *testing.T) []string {
	t.Helper()
	content, err := GetTopic(Index)
	if err != nil {
		t.Fatal(err)
	}
	re := regexp.MustCompile(`(?m)^\*\s+([^:]+):`)
	var topics []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		topics = append(topics, strings.TrimSpace(m[1]))
	}
	return topics
}

func TestTopics(t *testing.T) {
	indexed := indexedTopics(t)
	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}

	for _, topic := range indexed {
		if !slices.Contains(all, topic) {
			t.Errorf("topic %q is listed in %s.md but does not exist", topic, Index)
		}
	}
	for _, topic := range all {
		if !slices.Contains(indexed, topic) {
			t.Errorf("topic %q is not listed in %s.md", topic, Index)
		}
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) failed: %v", err)
	}
	for _, title := range []string{"# Risk assessment", "# Historical simulation", "# Strategy comparison"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopics(*) does not contain %q", title)
		}
	}
	if strings.Contains(all, "A typical session") {
		t.Error("GetTopics(*) contains the index")
	}

	if _, err := GetTopics(Index, "nope"); err == nil {
		t.Error("GetTopics() succeeded with an unknown topic")
	}

	if got, err := Title("simulation"); err != nil || got != "Historical simulation" {
		t.Errorf("Title(simulation) = %q, %v", got, err)
	}
}

// TestCodeBlocks runs the examples of every topic, and of the README, against
// a freshly built iw.
func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	bin := t.TempDir()
	build := exec.Command("go", "build", "-o", filepath.Join(bin, "iw"), "../iw/")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build iw: %v", err)
	}

	// every scenario works offline on the database of its own folder.
	env := append(os.Environ(),
		fmt.Sprintf("PATH=%s%c%s", bin, os.PathListSeparator, os.Getenv("PATH")),
		"IW_DB=investwise.db",
		"GEMINI_API_KEY=",
		"GOOGLE_API_KEY=",
	)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			s := scenario{env: env, dir: t.TempDir()}
			for _, b := range codeBlocks(t, file) {
				s.run(t, b)
			}
		})
	}
}

// block is an executable fenced code block.
type block struct {
	kind    string
	content string
	pos     string // file:line
}

// codeBlocks returns the executable blocks of a markdown file in order.
func codeBlocks(t *testing.T, file string) []block {
	t.Helper()
	source, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(source))
		switch kind {
		case bashSetup, bashRun, consoleCheck, bashCheck:
		default:
			return ast.WalkContinue, nil
		}
		var content strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			content.Write(line.Value(source))
		}
		// goldmark does not track lines, count them up to the info string.
		line := bytes.Count(source[:fcb.Info.Segment.Start], []byte("\n")) + 1
		blocks = append(blocks, block{
			kind:    kind,
			content: content.String(),
			pos:     fmt.Sprintf("%s:%d", file, line),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// scenario is the state shared by consecutive blocks of a file.
type scenario struct {
	env        []string
	dir        string
	lastOutput string
}

func (s *scenario) run(t *testing.T, b block) {
	t.Helper()
	if b.kind == consoleCheck {
		want := strings.TrimSpace(b.content)
		got := strings.TrimSpace(s.lastOutput)
		if want != got {
			t.Errorf("%s: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q", b.pos, got, want, got, want)
		}
		return
	}
	if b.kind == bashSetup {
		s.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = s.dir
	cmd.Env = s.env
	output, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		s.lastOutput = string(output)
	}
	if err == nil {
		return
	}
	if b.kind == bashCheck {
		t.Errorf("%s: check failed: %v with output:\n%s", b.pos, err, output)
		return
	}
	t.Fatalf("%s: %s failed: %v with output:\n%s", b.pos, b.kind, err, output)
}
