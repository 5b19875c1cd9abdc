package linear_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crxbuild/internal/adapters/linear"
	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/crxbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildObserver = (*linear.Renderer)(nil)

var popup = &domain.ResolvedModule{Entry: "src/popup.ts", Bundle: "assets/popup-X.js"}

func TestRenderer_WatchLifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var out bytes.Buffer
	r := linear.NewRenderer(&out, false)

	r.WatchStarted("/ext")
	r.BuildStarted()
	r.BuildFinished(domain.BuildReport{Result: popup, Duration: 12 * time.Millisecond})
	r.BuildStarted()
	r.BuildFinished(domain.BuildReport{Err: zerr.New("bundling failed"), Duration: 3 * time.Millisecond})
	r.BuildFinished(domain.BuildReport{Duration: time.Millisecond})

	assert.Equal(t, strings.Join([]string{
		"● watching /ext",
		"✓ src/popup.ts → assets/popup-X.js (12ms)",
		"✗ build failed (3ms)",
		"manifest declares no popup, nothing to build",
		"",
	}, "\n"), out.String())
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := linear.NewRenderer(&out, true)

	r.WatchStarted("/ext")
	require.NoError(t, r.Built(popup))
	r.BuildFinished(domain.BuildReport{Err: zerr.New("bundling failed")})
	require.NoError(t, r.Modules(nil))
	require.NoError(t, r.Cleaned())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"entry":"src/popup.ts","bundle":"assets/popup-X.js"}`, lines[0])
	assert.JSONEq(t, `{"error":"bundling failed"}`, lines[1])
	assert.JSONEq(t, `[]`, lines[2])
	assert.JSONEq(t, `{"cleaned":true}`, lines[3])
}

func TestRenderer_Plain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var out bytes.Buffer
	r := linear.NewRenderer(&out, false)

	require.NoError(t, r.Built(popup))
	require.NoError(t, r.Modules([]string{"/ext/src/popup.ts", "/ext/src/util.ts"}))
	require.NoError(t, r.Cleaned())

	assert.Equal(t, strings.Join([]string{
		"✓ src/popup.ts → assets/popup-X.js",
		"/ext/src/popup.ts",
		"/ext/src/util.ts",
		"✓ output directory removed",
		"",
	}, "\n"), out.String())
}
