package jobfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/breaker"
	"github.com/roach88/enigma/internal/machine"
)

const code1Plaintext = "NICEWORKYOUVEMANAGEDTODECODETHEFIRSTSECRETSTRING"

func code1Result() *breaker.Result {
	return &breaker.Result{
		Found:     true,
		Plaintext: code1Plaintext,
		Score:     51,
		Tested:    3,
		Matched:   1,
		Settings: machine.Settings{
			Rotors:       []string{"Beta", "Gamma", "V"},
			Positions:    "MJM",
			RingSettings: []int{4, 2, 14},
			Plugboard:    []string{"KI", "NX", "FL"},
			Reflector:    "C",
		},
	}
}

func TestLoad_YAML(t *testing.T) {
	job, err := Load("testdata/code1.yaml")
	require.NoError(t, err)

	assert.Equal(t, "code1", job.Name)
	assert.Equal(t, []string{"secrets"}, job.Cribs)

	ct := job.NormalizedCiphertext()
	assert.Equal(t, "DMEXBMKYCVPNQBEDHXVPZGKMTFFBJRPJTLHLCHOTKOYXGGHZ", ct.Text)
	assert.True(t, ct.Modified(), "lower case and spaces are reported")
	assert.Equal(t, []string{"SECRETS"}, job.NormalizedCribs())

	c := job.Constraints()
	assert.Equal(t, [][]string{{"Beta"}, {"Gamma"}, {"V"}}, c.Rotors)
	assert.Equal(t, []string{"M", "J", "M"}, c.Positions)
	assert.Equal(t, [][]int{{4}, {2}, {14}}, c.RingSettings)
	assert.Equal(t, []string{"KI", "NX", "FL"}, c.Plugboard)
	assert.Equal(t, []string{"A", "B", "C"}, c.Reflectors)
	assert.False(t, c.ModifyReflector)

	require.NotNil(t, job.Expect)
	require.NotNil(t, job.Expect.Found)
	assert.True(t, *job.Expect.Found)
}

func TestLoad_CUE(t *testing.T) {
	job, err := Load("testdata/code5.cue")
	require.NoError(t, err)

	assert.Equal(t, "code5", job.Name)
	assert.Len(t, job.Cribs, 5)

	c := job.Constraints()
	assert.Equal(t, [][]string{{"V"}, {"II"}, {"IV"}}, c.Rotors)
	assert.Equal(t, []string{"UG", "IE", "PO", "NX", "WT"}, c.Plugboard)
	assert.True(t, c.ModifyReflector)
	assert.Equal(t, 4, c.ReflectorSwaps)

	space, err := job.SearchSpace()
	require.NoError(t, err)
	assert.Equal(t, "6438", space.Total.String())

	require.NotNil(t, job.Expect)
	assert.Nil(t, job.Expect.Found)
	assert.Equal(t, "YOUCANFOLLOWMYDOGONINSTAGRAMATTALESOFHOFFMANN", job.Expect.Plaintext)
}

func TestLoad_WildcardSlots(t *testing.T) {
	job, err := Load("testdata/open.yaml")
	require.NoError(t, err)

	c := job.Constraints()
	require.Equal(t, 4, c.RotorCount())
	assert.Equal(t, []string{"Beta", "Gamma"}, c.Rotors[0])
	assert.Equal(t, machine.RotorNames(), c.Rotors[1])
	assert.Equal(t, machine.RotorNames(), c.Rotors[2])
	assert.Equal(t, []string{"I"}, c.Rotors[3])
	assert.Equal(t, []string{breaker.Alphabet, breaker.Alphabet, "AB", "Z"}, c.Positions)
	assert.Len(t, c.RingSettings, 4)
	assert.Empty(t, c.Plugboard)

	space, err := job.SearchSpace()
	require.NoError(t, err)
	assert.Equal(t, "74139786240", space.Total.String())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name     string
		path     string
		wantCode string
		contains string
	}{
		{
			name:     "missing file",
			path:     filepath.Join(dir, "nope.yaml"),
			wantCode: ErrCodeNotFound,
		},
		{
			name:     "unsupported extension",
			path:     write("job.toml", "name = 1"),
			wantCode: ErrCodeFormat,
		},
		{
			name:     "unknown yaml field",
			path:     write("typo.yaml", "name: x\nciphertext: ABC\ncrib: [A]\n"),
			wantCode: ErrCodeParseFailed,
		},
		{
			name:     "invalid cue",
			path:     write("bad.cue", "name: \"x\"\nname: \"y\"\n"),
			wantCode: ErrCodeBuildFailed,
		},
		{
			name:     "incomplete cue",
			path:     write("open.cue", "name: string\nciphertext: \"ABC\"\n"),
			wantCode: ErrCodeBuildFailed,
		},
		{
			name:     "missing name",
			path:     write("noname.yaml", "ciphertext: ABC\n"),
			wantCode: ErrCodeInvalid,
			contains: "name is required",
		},
		{
			name:     "ring setting out of range",
			path:     write("ring.yaml", "name: x\nciphertext: ABC\nring_settings: [[1], [27], [3]]\n"),
			wantCode: ErrCodeInvalid,
			contains: "ring_settings[1][0] must be at most 26",
		},
		{
			name:     "too many rotors",
			path:     write("rotors.yaml", "name: x\nciphertext: ABC\nrotor_count: 5\n"),
			wantCode: ErrCodeInvalid,
			contains: "rotor_count must be at most 4",
		},
		{
			name:     "bad plugboard token",
			path:     write("plug.yaml", "name: x\nciphertext: ABC\nplugboard: [ABC]\n"),
			wantCode: ErrCodeInvalid,
			contains: "plugboard[0] must have length 2",
		},
		{
			name:     "pairs without allow",
			path:     write("mods.yaml", "name: x\nciphertext: ABC\nreflector_modifications: {allow: false, pairs: 2}\n"),
			wantCode: ErrCodeInvalid,
			contains: "allow is false",
		},
		{
			name:     "no letters",
			path:     write("empty.yaml", "name: x\nciphertext: '123 !'\n"),
			wantCode: ErrCodeInvalid,
			contains: "no letters",
		},
		{
			name:     "unknown rotor",
			path:     write("rotor.yaml", "name: x\nciphertext: ABC\nrotors: [[I], [II], [IX]]\n"),
			wantCode: ErrCodeConstraints,
			contains: "IX",
		},
		{
			name:     "slot count mismatch",
			path:     write("mismatch.yaml", "name: x\nciphertext: ABC\nrotor_count: 4\npositions: [A, B, C]\n"),
			wantCode: ErrCodeConstraints,
			contains: "positions",
		},
		{
			name:     "reused plug letter",
			path:     write("reuse.yaml", "name: x\nciphertext: ABC\nplugboard: [\"AB\", \"B?\"]\n"),
			wantCode: ErrCodeConstraints,
			contains: "plugboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.wantCode, le.Code, err.Error())
			assert.Equal(t, tt.path, le.Path)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoad_ConstraintErrorUnwraps(t *testing.T) {
	_, err := Parse([]byte("name: x\nciphertext: ABC\nreflectors: [D]\n"), FormatYAML, "inline")
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
	assert.True(t, breaker.IsConfigError(err))
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"job.yaml", FormatYAML, true},
		{"job.YML", FormatYAML, true},
		{"dir/job.cue", FormatCUE, true},
		{"job.json", "", false},
		{"job", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatForPath(tt.path)
		assert.Equal(t, tt.want, got, tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
	}
}

func TestHash_IgnoresPresentation(t *testing.T) {
	a, err := Parse([]byte(`
name: a
ciphertext: "ABC DEF"
cribs: [secret]
`), FormatYAML, "a")
	require.NoError(t, err)

	b, err := Parse([]byte(`
name: b
description: same search, different spelling
ciphertext: abcdef
cribs: [SECRET]
rotor_count: 3
expect: {found: false}
`), FormatYAML, "b")
	require.NoError(t, err)

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	b.Cribs = append(b.Cribs, "other")
	hc, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
}

func TestCheck(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name    string
		expect  *Expect
		res     *breaker.Result
		wantErr string
	}{
		{"no expectation", nil, &breaker.Result{}, ""},
		{"found matches", &Expect{Found: &yes}, code1Result(), ""},
		{"found mismatch", &Expect{Found: &no}, code1Result(), "expected found=false"},
		{"plaintext normalized", &Expect{Plaintext: "nice work " + code1Plaintext[8:]}, code1Result(), ""},
		{"plaintext mismatch", &Expect{Plaintext: "HELLO"}, code1Result(), "expected plaintext"},
		{"nothing found", &Expect{Plaintext: "HELLO"}, &breaker.Result{}, "expected plaintext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &Job{Name: "x", Ciphertext: "ABC", Expect: tt.expect}
			err := job.Check(tt.res)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReport_Golden(t *testing.T) {
	job, err := Load("testdata/code1.yaml")
	require.NoError(t, err)

	report, err := NewReport(job, nil, code1Result())
	require.NoError(t, err)
	assert.Equal(t, ExpectMet, report.Expectation)

	data, err := report.Canonical()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "code1", data)
}

func TestReport_NotFound(t *testing.T) {
	job, err := Load("testdata/code1.yaml")
	require.NoError(t, err)

	report, err := NewReport(job, nil, &breaker.Result{Tested: 3})
	require.NoError(t, err)

	assert.False(t, report.Found)
	assert.Nil(t, report.Settings)
	assert.Empty(t, report.SettingsHash)
	assert.Equal(t, "3", report.SearchSpace)
	assert.Equal(t, ExpectFail, report.Expectation)
	assert.Contains(t, report.Mismatch, "expected found=true")

	data, err := report.Canonical()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "settings")
}
