package scenario

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestParseBareList(t *testing.T) {
	sc, err := Parse([]byte(`[{"line": "Hi.", "action": "render_title", "args": {"text": "T"}}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Script) != 1 || sc.Script[0].Line != "Hi." {
		t.Fatalf("script = %+v", sc.Script)
	}
}

func TestParseScriptObject(t *testing.T) {
	sc, err := Parse([]byte(`{"script": [{"line": "One."}, {"line": "Two."}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Script) != 2 {
		t.Fatalf("script = %+v", sc.Script)
	}
}

func TestParseRejectsOtherShapes(t *testing.T) {
	for _, src := range []string{`{"steps": []}`, `"just a string"`, `{broken`} {
		if _, err := Parse([]byte(src)); err == nil {
			t.Errorf("Parse(%q) should fail", src)
		}
	}
}

func TestActionListShorthand(t *testing.T) {
	step := Step{Action: "pulse", Args: map[string]any{"target": "g"}}
	list := step.ActionList()
	if len(list) != 1 || list[0].Name != "pulse" {
		t.Fatalf("shorthand expansion = %+v", list)
	}
	if list[0].Args["target"] != "g" {
		t.Errorf("args not carried: %+v", list[0].Args)
	}

	// The explicit list wins over the shorthand.
	step.Actions = []ActionSpec{{Name: "fade_out"}}
	if got := step.ActionList(); len(got) != 1 || got[0].Name != "fade_out" {
		t.Errorf("explicit list not preferred: %+v", got)
	}

	var empty Step
	if got := empty.ActionList(); got != nil {
		t.Errorf("empty step yielded actions: %+v", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(`[{"line": "From disk."}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Script[0].Line != "From disk." {
		t.Errorf("loaded %+v", sc.Script)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"script": [{"line": "From the wire."}]}`))
	}))
	defer srv.Close()

	sc, err := Load(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Script[0].Line != "From the wire." {
		t.Errorf("loaded %+v", sc.Script)
	}

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer bad.Close()
	if _, err := Load(bad.URL); err == nil {
		t.Error("HTTP error status should fail")
	}
}
