package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/whattocook/internal/meals"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLogsCommand_FormatsTail(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	logPath := filepath.Join(dir, "whattocook.log")
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`log_file = "`+logPath+`"`+"\n"), 0o600))
	require.NoError(t, os.WriteFile(logPath, []byte(strings.Join([]string{
		`{"level":"info","ts":"t1","logger":"menu","msg":"first"}`,
		`{"level":"warn","ts":"t2","logger":"menu","msg":"second","error":"boom"}`,
	}, "\n")+"\n"), 0o600))

	out, err := execute(t, "--config", cfgPath, "logs", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, "t2 WARN  menu  second  error=boom\n", out)

	out, err = execute(t, "--config", cfgPath, "logs", "-n", "1", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, `"msg":"second"`)
}

func TestSearchCommand_NeedsIngredients(t *testing.T) {
	_, err := execute(t, "search")
	assert.Error(t, err)
}

func TestPrintMeal(t *testing.T) {
	var b bytes.Buffer
	printMeal(&b, meals.Meal{
		Name:         "Teriyaki Chicken",
		Category:     "Chicken",
		Area:         "Japanese",
		YouTube:      "https://youtu.be/x",
		Instructions: "  Grill it.\n",
	})
	assert.Equal(t, "Teriyaki Chicken\nChicken · Japanese\nhttps://youtu.be/x\n\nGrill it.\n", b.String())
}

func TestPrintMeals(t *testing.T) {
	var b bytes.Buffer
	printMeals(&b, nil, "nothing")
	assert.Equal(t, "nothing\n", b.String())

	b.Reset()
	printMeals(&b, []meals.Meal{{Name: "Soup", Source: "http://soup"}, {Name: "Stew"}}, "nothing")
	assert.Equal(t, "Soup  http://soup\nStew\n", b.String())
}
