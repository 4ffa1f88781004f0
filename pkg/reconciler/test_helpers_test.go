package reconciler_test

import (
	"context"
	"testing"

	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/logging"
)

// testContext returns a context carrying a capturing logger.
func testContext(t *testing.T) (context.Context, *logging.TestLogger) {
	t.Helper()
	tl := logging.NewTestLogger(t)
	return logging.WithLogger(context.Background(), tl.Logger), tl
}

func primary(id, name, code string) departments.Primary {
	return departments.Primary{ID: id, Name: name, Code: code}
}

func secondary(recordID, name, code string) departments.Secondary {
	return departments.NewSecondary(recordID, name, code)
}

func assigned(row departments.Primary) string {
	return ptr.Deref(row.Assigned)
}

func ids(rows []departments.Primary) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
