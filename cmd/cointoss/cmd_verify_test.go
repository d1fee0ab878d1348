package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVerifyCmdAcceptsValidMnemonic(t *testing.T) {
	var output bytes.Buffer
	verifyCmd := newVerifyCmd()
	verifyCmd.SetOut(&output)
	verifyCmd.SetErr(&output)
	verifyCmd.SetArgs(strings.Fields("legal winner thank year wave sausage worth useful legal winner thank yellow"))
	if err := verifyCmd.Execute(); err != nil {
		t.Fatalf("verify Execute: %v\noutput:\n%s", err, output.String())
	}
	if !strings.Contains(output.String(), "ok: valid 12-word mnemonic (128 bits of entropy, 4 checksum bits)") {
		t.Fatalf("verify output = %q", output.String())
	}
}

func TestVerifyCmdReadsStdinAndFoldsCase(t *testing.T) {
	var output bytes.Buffer
	verifyCmd := newVerifyCmd()
	verifyCmd.SetOut(&output)
	verifyCmd.SetErr(&output)
	verifyCmd.SetIn(strings.NewReader(strings.Repeat("Abandon\n", 23) + "ART\n"))
	verifyCmd.SetArgs([]string{})
	if err := verifyCmd.Execute(); err != nil {
		t.Fatalf("verify Execute: %v\noutput:\n%s", err, output.String())
	}
	if !strings.Contains(output.String(), "ok: valid 24-word mnemonic") {
		t.Fatalf("verify output = %q", output.String())
	}
}

func TestVerifyCmdExitCodes(t *testing.T) {
	cases := []struct {
		words string
		want  string
	}{
		{strings.Repeat("abandon ", 12), "checksum mismatch"},
		{strings.Repeat("abandon ", 11) + "bitcoin", "word not in wordlist"},
		{"abandon about", "word count must be"},
	}
	for _, tc := range cases {
		args := append([]string{"verify"}, strings.Fields(tc.words)...)
		code, out, errOut := runForTest(t, "", args...)
		if code != exitFailure {
			t.Fatalf("verify %q: exit = %d, want %d", tc.words, code, exitFailure)
		}
		if out != "" {
			t.Fatalf("verify %q: stdout = %q, want empty", tc.words, out)
		}
		if !strings.Contains(errOut, tc.want) {
			t.Fatalf("verify %q: stderr = %q, want %q", tc.words, errOut, tc.want)
		}
	}
}

func TestVerifyCmdRoundTripsGeneratedPhrase(t *testing.T) {
	clearCointossEnv(t)
	code, out, errOut := runForTest(t, "qf\n", "--21")
	if code != exitOK {
		t.Fatalf("generate exit = %d\nstderr:\n%s", code, errOut)
	}
	code, verifyOut, errOut := runForTest(t, out, "verify")
	if code != exitOK {
		t.Fatalf("verify exit = %d\nstderr:\n%s", code, errOut)
	}
	if !strings.Contains(verifyOut, "ok: valid 21-word mnemonic") {
		t.Fatalf("verify output = %q", verifyOut)
	}
}
