package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.3"

	info := Get()
	if info.Version != "v1.2.3" || info.Commit != Commit || info.Date != Date {
		t.Errorf("Get() = %+v", info)
	}
	if !strings.HasPrefix(info.String(), "version: v1.2.3\n") {
		t.Errorf("String() = %q", info.String())
	}
	if !strings.Contains(Template(), "{{.Name}} version v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
}
