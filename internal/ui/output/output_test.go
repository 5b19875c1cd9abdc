package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/crxbuild/internal/ui/output"
)

func TestProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("CI", "true")
	assert.Equal(t, termenv.Ascii, output.Profile())

	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.Profile())

	t.Setenv("CI", "")
	p := output.Profile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii)
}

func TestNew(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := output.New(&buf)
	_, _ = out.WriteString(out.String("popup.html").Foreground(termenv.RGBColor("#22A06B")).String())

	assert.Equal(t, "popup.html", buf.String())
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}
