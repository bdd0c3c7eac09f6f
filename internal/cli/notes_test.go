package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/jot/internal/testutil"
)

func TestListPrintsHeaderAndNotes(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()

	for _, verb := range []string{"list", "ls"} {
		t.Run(verb, func(t *testing.T) {
			res := runCLI(t, home, "", verb).MustSucceed(t)
			res.AssertStdout(t, "[default]\n1: A\n2: B\n3: C\n")
		})
	}
}

func TestListEmptySpace(t *testing.T) {
	home := testutil.NewTestHome(t).Build()

	res := runCLI(t, home, "", "list").MustSucceed(t)
	res.AssertStdout(t, "[default]\nNo notes found\n")
}

func TestReadOnlyCommandsDoNotWrite(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()
	before := home.ModTime("spaces/default.json")

	runCLI(t, home, "", "list").MustSucceed(t)
	runCLI(t, home, "", "export", "--format", "yaml").MustSucceed(t)
	runCLI(t, home, "", "spaces").MustSucceed(t)

	if after := home.ModTime("spaces/default.json"); after != before {
		t.Errorf("read-only commands modified the notes file")
	}
	home.AssertFileNotExists("current_space")

	empty := testutil.NewTestHome(t).Build()
	runCLI(t, empty, "", "list").MustSucceed(t)
	empty.AssertFileNotExists("spaces/default.json")
}

func TestAddAppendsWithNextKey(t *testing.T) {
	home := testutil.NewTestHome(t).Build()

	res := runCLI(t, home, "", "add", "hello world").MustSucceed(t)
	res.AssertStdout(t, "Note added: 1 -> hello world\n[default]\n1: hello world\n")

	res = runCLI(t, home, "", "add", "buy", "oat", "milk").MustSucceed(t)
	res.AssertStdoutContains(t, "Note added: 2 -> buy oat milk\n")
	home.AssertFileContains("spaces/default.json", `"2": "buy oat milk"`)
}

func TestAddRequiresText(t *testing.T) {
	home := testutil.NewTestHome(t).Build()

	res := runCLI(t, home, "", "add").MustFail(t)
	res.AssertStderrContains(t, "requires note text")
	home.AssertFileNotExists("spaces/default.json")
}

func TestAddKeyPolicy(t *testing.T) {
	sparse := `{"entries": {"1": "a", "5": "b"}}`

	tests := []struct {
		name    string
		config  string
		wantKey string
	}{
		{name: "count policy", config: "", wantKey: "3"},
		{name: "max policy", config: "[notes]\nkey_policy = \"max\"\n", wantKey: "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.NewTestHome(t).WithSpace("default", sparse)
			if tt.config != "" {
				b = b.WithFile("config.toml", tt.config)
			}
			home := b.Build()

			res := runCLI(t, home, "", "add", "c").MustSucceed(t)
			res.AssertStdoutContains(t, "Note added: "+tt.wantKey+" -> c\n")
		})
	}
}

func TestDeleteRenumbers(t *testing.T) {
	for _, verb := range []string{"delete", "del", "rm"} {
		t.Run(verb, func(t *testing.T) {
			home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()

			res := runCLI(t, home, "", verb, "2").MustSucceed(t)
			res.AssertStdout(t, "Note deleted: 2\n[default]\n1: A\n2: C\n")
			home.AssertFileContains("spaces/default.json", `"2": "C"`)
			home.AssertFileNotContains("spaces/default.json", `"3"`)
		})
	}
}

func TestDeleteMissingKeyLeavesFile(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()
	before := home.SpaceFile("default")

	res := runCLI(t, home, "", "delete", "9").MustFail(t)
	res.AssertStderrContains(t, "note not found: 9")
	if got := home.SpaceFile("default"); got != before {
		t.Errorf("file changed after failed delete:\n%s", got)
	}
}

func TestEditReplacesText(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()
	fakeEditor(t, `printf 'edited text\n' > "$1"`)

	res := runCLI(t, home, "", "edit", "2").MustSucceed(t)
	res.AssertStdout(t, "Note updated.\n[default]\n1: A\n2: edited text\n3: C\n")
}

func TestEditSeesCurrentText(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()
	fakeEditor(t, `sed 's/^B$/B and more/' "$1" > "$1.tmp" && mv "$1.tmp" "$1"`)

	runCLI(t, home, "", "ed", "2").MustSucceed(t)
	home.AssertFileContains("spaces/default.json", `"2": "B and more"`)
}

func TestEditAbortKeepsNote(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{name: "empty result", script: `: > "$1"`},
		{name: "editor fails", script: `exit 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()
			before := home.SpaceFile("default")
			fakeEditor(t, tt.script)

			res := runCLI(t, home, "", "edit", "1").MustFail(t)
			res.AssertStderrContains(t, "edit aborted or failed")
			if got := home.SpaceFile("default"); got != before {
				t.Errorf("file changed after aborted edit:\n%s", got)
			}
		})
	}
}

func TestEditMissingKeySkipsEditor(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()
	marker := filepath.Join(t.TempDir(), "ran")
	fakeEditor(t, `touch '`+marker+`'`)

	res := runCLI(t, home, "", "edit", "7").MustFail(t)
	res.AssertStderrContains(t, "note not found: 7")
	if _, err := os.Stat(marker); err == nil {
		t.Error("editor ran for a missing key")
	}
}

func TestSwap(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()

	res := runCLI(t, home, "", "swap", "1", "3").MustSucceed(t)
	res.AssertStdout(t, "Swapped notes 1 and 3\n[default]\n1: C\n2: B\n3: A\n")

	res = runCLI(t, home, "", "swap", "1", "4").MustFail(t)
	res.AssertStderrContains(t, "one or both keys not found")
	home.AssertFileContains("spaces/default.json", `"1": "C"`)
}

func TestClearConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		stdin     string
		args      []string
		wantOut   string
		wantEmpty bool
	}{
		{name: "yes", stdin: "y\n", args: []string{"clear"}, wantOut: "All notes deleted.", wantEmpty: true},
		{name: "yes word", stdin: "YES\n", args: []string{"cl"}, wantOut: "All notes deleted.", wantEmpty: true},
		{name: "no", stdin: "n\n", args: []string{"clear"}, wantOut: "Aborted. No notes were deleted."},
		{name: "invalid", stdin: "maybe\n", args: []string{"clear"}, wantOut: "Invalid input. Please enter 'y' or 'n'."},
		{name: "end of input", stdin: "", args: []string{"clear"}, wantOut: "Invalid input. Please enter 'y' or 'n'."},
		{name: "flag skips prompt", stdin: "", args: []string{"clear", "--yes"}, wantOut: "All notes deleted.", wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()

			res := runCLI(t, home, tt.stdin, tt.args...).MustSucceed(t)
			res.AssertStdoutContains(t, tt.wantOut)

			if tt.wantEmpty {
				home.AssertFileNotContains("spaces/default.json", `"1"`)
			} else {
				home.AssertFileContains("spaces/default.json", `"3": "C"`)
			}
		})
	}
}

func TestCorruptFileWarnsAndActsEmpty(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", "{not json").Build()

	res := runCLI(t, home, "", "list").MustSucceed(t)
	res.AssertStdout(t, "[default]\nNo notes found\n")
	res.AssertStderrContains(t, "treating space 'default' as empty")

	res = runCLI(t, home, "", "add", "fresh").MustSucceed(t)
	res.AssertStdoutContains(t, "Note added: 1 -> fresh")
	home.AssertFileContains("spaces/default.json", `"1": "fresh"`)
}

func TestSpaceFlagTargetsOtherSpace(t *testing.T) {
	home := testutil.NewTestHome(t).
		WithSpace("default", testutil.ThreeNotes()).
		WithSpace("work", testutil.EmptySpace()).
		Build()

	res := runCLI(t, home, "", "-s", "work", "add", "ship it").MustSucceed(t)
	res.AssertStdoutContains(t, "[work]\n1: ship it\n")
	home.AssertFileNotExists("current_space")
	home.AssertFileContains("spaces/default.json", `"3": "C"`)

	res = runCLI(t, home, "", "--space", "missing", "list").MustFail(t)
	res.AssertStderrContains(t, "space 'missing' does not exist")
}

func TestShowRendersNote(t *testing.T) {
	home := testutil.NewTestHome(t).
		WithSpace("default", `{"entries": {"1": "remember the **milk**"}}`).
		Build()

	res := runCLI(t, home, "", "show", "1").MustSucceed(t)
	res.AssertStdoutContains(t, "milk")

	runCLI(t, home, "", "show", "2").MustFail(t)
}

func TestExportFormats(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()

	tests := []struct {
		format string
		want   string
	}{
		{format: "yaml", want: "space: default\n"},
		{format: "toml", want: `space = "default"`},
		{format: "md", want: "# default\n"},
		{format: "html", want: "<h1>default</h1>"},
		{format: "json", want: `"3": "C"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			res := runCLI(t, home, "", "export", "-f", tt.format).MustSucceed(t)
			res.AssertStdoutContains(t, tt.want)
		})
	}

	res := runCLI(t, home, "", "export", "--format", "xml").MustFail(t)
	res.AssertStderrContains(t, `unknown export format "xml"`)
}

func TestCompleteNoteKeys(t *testing.T) {
	home := testutil.NewTestHome(t).WithSpace("default", testutil.ThreeNotes()).Build()
	t.Setenv("JOT_HOME", home.Path)

	app := NewApp(nil, nil, nil)
	root := NewRootCmd(app)
	complete := completeNoteKeys(app, 1)

	got, _ := complete(root, nil, "")
	want := []string{"1\tA", "2\tB", "3\tC"}
	if len(got) != len(want) {
		t.Fatalf("completions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("completion[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got, _ := complete(root, []string{"1"}, ""); len(got) != 0 {
		t.Errorf("expected no completions after first arg, got %v", got)
	}
}
