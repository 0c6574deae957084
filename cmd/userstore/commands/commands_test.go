package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("userstore %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestRecordCommands_LocalFile(t *testing.T) {
	data := filepath.Join(t.TempDir(), "users.json")
	serverURL = ""

	if out := run(t, "init", "--data", data); !strings.Contains(out, "Created") {
		t.Fatalf("init: %s", out)
	}
	run(t, "add", "--data", data, "id=1", "username=a", "email=a@x.com")
	run(t, "add", "--data", data, `{"id":2,"username":"b","email":"b@x.com"}`)

	out := run(t, "update", "--data", data, "2", "phone=555")
	var merged map[string]any
	if err := json.Unmarshal([]byte(out), &merged); err != nil || merged["phone"] != "555" || merged["username"] != "b" {
		t.Fatalf("update output: %s (err=%v)", out, err)
	}

	run(t, "delete", "--data", data, "1")

	out = run(t, "list", "--data", data)
	var doc struct {
		Users []map[string]any `json:"users"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("list output: %s (err=%v)", out, err)
	}
	if len(doc.Users) != 1 || doc.Users[0]["username"] != "b" {
		t.Fatalf("unexpected users: %+v", doc.Users)
	}
}

func TestAdd_DuplicateFails(t *testing.T) {
	data := filepath.Join(t.TempDir(), "users.json")
	serverURL = ""
	run(t, "add", "--data", data, "id=1", "username=a", "email=a@x.com")

	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"add", "--data", data, "id=2", "username=a", "email=b@x.com"})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "username") {
		t.Fatalf("want duplicate username error, got %v", err)
	}
}

func TestParseUserArgs(t *testing.T) {
	u, err := parseUserArgs([]string{"id=1", "note=a=b"})
	if err != nil {
		t.Fatalf("pairs: %v", err)
	}
	if u["id"] != "1" || u["note"] != "a=b" {
		t.Fatalf("pairs: %+v", u)
	}

	u, err = parseUserArgs([]string{`{"id": 7, "tags": ["x"]}`})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if u["id"] != json.Number("7") {
		t.Fatalf("json id: %#v", u["id"])
	}

	if _, err := parseUserArgs([]string{"novalue"}); err == nil {
		t.Fatalf("expected error for missing '='")
	}
}
