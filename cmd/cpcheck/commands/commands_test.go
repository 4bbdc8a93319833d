package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Conceptual-Machines/counterpoint-api/internal/counterpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	formatOutput = formatTable
	noColor = false
	validateFile = ""
	validateSpecies = ""
	validateCF = ""
	validateCantus = ""
	validateCP = ""
	validateKey = ""
	validateMode = ""
	validatePosition = ""
	cantusMode = ""
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidate_Flags(t *testing.T) {
	out, err := runCmd(t, "validate", "-s", "1", "--cf", "C4 D4 E4 D4 C4", "--cp", "C5,B4,G4,B4,C5")
	require.NoError(t, err)
	assert.Contains(t, out, "First species")
	assert.Contains(t, out, "VALID  score 100/100")
	assert.Contains(t, out, "P8")
}

func TestValidate_SpeciesByName(t *testing.T) {
	out, err := runCmd(t, "validate", "-o", "json", "-s", "Second", "--cf", "C4 D4 C4", "--cp", "C5 B4 A4 B4 C5")
	require.NoError(t, err)

	var res counterpoint.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, counterpoint.SecondSpecies, res.Species)
}

func TestValidate_Invalid(t *testing.T) {
	out, err := runCmd(t, "validate", "-s", "1", "--cf", "C4 D4", "--cp", "G4 A4")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "parallel-fifths")
	assert.Contains(t, out, "INVALID")
}

func TestValidate_JSON(t *testing.T) {
	out, err := runCmd(t, "validate", "-o", "json", "-s", "2", "--cf", "C4 D4 C4", "--cp", "C5 B4 A4 B4 C5")
	require.NoError(t, err)

	var res counterpoint.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Valid)
	assert.Equal(t, counterpoint.SecondSpecies, res.Species)
	assert.Len(t, res.Positions, 5)
}

func TestValidate_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exercise.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`species: 1
cantus_slug: short-c-major
counterpoint: [C5, B4, G4, B4, C5]
`), 0o644))

	out, err := runCmd(t, "validate", "-f", path, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "valid: true")
	assert.Contains(t, out, "score: 100")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no species", []string{"validate", "--cf", "C4", "--cp", "C5"}, "species is required"},
		{"no counterpoint", []string{"validate", "-s", "1", "--cf", "C4"}, "counterpoint is required"},
		{"no cantus", []string{"validate", "-s", "1", "--cp", "C5"}, "cantus firmus is required"},
		{"both cantus", []string{"validate", "-s", "1", "--cf", "C4", "--cantus", "short-c-major", "--cp", "C5"}, "not both"},
		{"unknown slug", []string{"validate", "-s", "1", "--cantus", "nope", "--cp", "C5"}, `"nope"`},
		{"bad pitch", []string{"validate", "-s", "1", "--cf", "C4 D4", "--cp", "C5 X4"}, "counterpoint note 2"},
		{"mode hint", []string{"validate", "-s", "1", "--cf", "D4", "--cp", "D5", "-k", "D", "-m", "dorain"}, `did you mean "dorian"?`},
		{"bad species", []string{"validate", "-s", "5", "--cf", "C4", "--cp", "C5"}, "species must be 1, 2 or 3"},
		{"unknown species name", []string{"validate", "-s", "fourth", "--cf", "C4", "--cp", "C5"}, `got "fourth"`},
		{"bad format", []string{"validate", "-o", "xml", "-s", "1", "--cf", "C4", "--cp", "C5"}, "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCantusList(t *testing.T) {
	out, err := runCmd(t, "cantus", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "fux-dorian")
	assert.Contains(t, out, "short-c-major")

	out, err = runCmd(t, "cantus", "list", "--mode", "Dorian", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "fux-dorian")
	assert.NotContains(t, out, "fux-lydian")
}

func TestCantusShow(t *testing.T) {
	out, err := runCmd(t, "cantus", "show", "fux-dorian")
	require.NoError(t, err)
	assert.Contains(t, out, "D4 F4 E4 D4 G4")
	assert.Contains(t, out, "Gradus ad Parnassum")

	_, err = runCmd(t, "cantus", "show", "missing")
	assert.Error(t, err)
}

func TestSplitNotes(t *testing.T) {
	assert.Equal(t, []string{"C4", "D4", "rest", "E4"}, splitNotes(" C4, D4 rest,E4 "))
	assert.Empty(t, splitNotes(""))
}
