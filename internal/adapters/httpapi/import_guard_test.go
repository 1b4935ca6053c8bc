package httpapi

import (
	"testing"

	"astrobrasil/testutil"
)

// TestNoBackendImports ensures production handlers never bind to a concrete backend.
func TestNoBackendImports(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InfraImportForbidden, "handlers are wired with interfaces by the command")
	testutil.AssertNoDirectImports(t, ".", testutil.DriverImportForbidden, "handlers must not link storage drivers")
}
