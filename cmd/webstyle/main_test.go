package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `<!DOCTYPE html>
<html>
<head>
	<style>
		#a { color: red; width: 50% }
		p { margin: 0 auto }
		@media print { #a { color: blue } }
	</style>
</head>
<body>
	<div id="a" class="x y">text</div>
	<p style="width: 100px">para</p>
	<table><tr><td>ab</td><td>c</td></tr></table>
</body>
</html>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(context.Background(), append([]string{"webstyle", "-q"}, args...))
	return out.String(), err
}

func TestComputed(t *testing.T) {
	source := writeFile(t, "doc.html", document)

	out, err := run(t, "computed", "-s", "#a", "-p", "color", "-p", "display", source)
	require.NoError(t, err)
	assert.Equal(t, "div#a.x.y\n  color: rgb(255, 0, 0)\n  display: block\n", out)

	out, err = run(t, "-m", "print", "computed", "-s", ".x", "-p", "color", source)
	require.NoError(t, err)
	assert.Equal(t, "div#a.x.y\n  color: rgb(0, 0, 255)\n", out)

	out, err = run(t, "computed", "--native", "-s", "div:dir(ltr), p", "-p", "width", source)
	require.NoError(t, err)
	assert.Equal(t, "div#a.x.y\n  width: 50%\np\n  width: 75pt\n", out)

	out, err = run(t, "computed", "-s", "body", "-p", "colour", source)
	require.NoError(t, err)
	assert.Contains(t, out, "colour: <")

	_, err = run(t, "computed", "-s", "div[", source)
	assert.Error(t, err)
	_, err = run(t, "computed", "-s", "span", source)
	assert.Error(t, err)
	_, err = run(t, "computed", filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
	_, err = run(t, "computed")
	assert.Error(t, err)
}

func TestUserStyleSheet(t *testing.T) {
	source := writeFile(t, "doc.html", document)
	user := writeFile(t, "user.css", "p { color: green !important } div { color: green !important }")

	out, err := run(t, "--user-css", user, "computed", "-s", "p, div", "-p", "color", source)
	require.NoError(t, err)
	assert.Equal(t, "div#a.x.y\n  color: rgb(0, 128, 0)\np\n  color: rgb(0, 128, 0)\n", out)
}

func TestBox(t *testing.T) {
	source := writeFile(t, "doc.html", document)

	// the screen profile is 1280px wide, the body has 8px margins
	out, err := run(t, "box", "-s", "p", source)
	require.NoError(t, err)
	assert.Equal(t, "p\n  width: 100\n  margin: 0 582 0 582\n  border: 0 0 0 0\n  padding: 0 0 0 0\n", out)

	out, err = run(t, "box", "-s", "head", "-u", "pt", source)
	require.NoError(t, err)
	assert.Equal(t, "head\n  no box\n", out)

	out, err = run(t, "box", "-s", "table", source)
	require.NoError(t, err)
	assert.Contains(t, out, "columns: ")

	_, err = run(t, "box", "-u", "em", source)
	assert.Error(t, err)
}

func TestProfiles(t *testing.T) {
	source := writeFile(t, "doc.html", document)
	profiles := writeFile(t, "profiles.yaml", `profiles:
  - medium: tiny
    width: 116
    height: 100
    font-family: serif
    font-size: 10
`)
	out, err := run(t, "--profiles", profiles, "-m", "tiny", "box", "-s", "body", source)
	require.NoError(t, err)
	assert.Equal(t, "body\n  width: 100\n  margin: 8 8 8 8\n  border: 0 0 0 0\n  padding: 0 0 0 0\n", out)

	_, err = run(t, "--profiles", profiles, "-m", "print", "box", source)
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	source := writeFile(t, "doc.html", document)

	out, err := run(t, "rules", "-s", "p", source)
	require.NoError(t, err)
	assert.Equal(t, "p\n  author     (0, 0, 1)    p { margin:0 auto }\n  author     (1; 0, 0, 0) style=\"width: 100px\"\n", out)

	out, err = run(t, "rules", "--ua", "-s", "p", source)
	require.NoError(t, err)
	assert.Contains(t, out, "user agent")
}

func TestTree(t *testing.T) {
	source := writeFile(t, "doc.html", document)

	out, err := run(t, "tree", "-p", "display", source)
	require.NoError(t, err)
	assert.Contains(t, out, "html display=block")
	assert.Contains(t, out, "div#a.x.y display=block")
	assert.Contains(t, out, "td display=table-cell")
	assert.NotContains(t, out, "head")

	out, err = run(t, "tree", "--all", source)
	require.NoError(t, err)
	assert.Contains(t, out, "head")
}

func TestSelector(t *testing.T) {
	out, err := run(t, "selector", "div > p.x, #id")
	require.NoError(t, err)
	assert.Contains(t, out, "specificity (0, 1, 2)")
	assert.Contains(t, out, "specificity (1, 0, 0)")

	_, err = run(t, "selector", "p >")
	assert.Error(t, err)
}
