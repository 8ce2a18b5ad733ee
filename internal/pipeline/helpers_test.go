package pipeline_test

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"stitcher/internal/config"
	"stitcher/internal/testsupport"
)

// probeStubScript reports a fixed 4.5 second, 2048 byte media file.
const probeStubScript = `#!/bin/sh
cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"}],"format":{"duration":"4.5","size":"2048","format_name":"mp4"}}
JSON
`

func requireUnixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a unix shell")
	}
}

func stubMediaBinaries(t *testing.T, cfg *config.Config, ffmpegScript, ffprobeScript string) {
	t.Helper()
	binDir := filepath.Join(testsupport.BaseDir(cfg), "bin")
	testsupport.StubBinary(t, binDir, "ffmpeg", ffmpegScript)
	testsupport.StubBinary(t, binDir, "ffprobe", ffprobeScript)
	testsupport.PrependPath(t, binDir)
}

// concatStubScript records its argument vector, copies the concat list file
// aside for inspection, and creates the output file named by the last
// argument.
func concatStubScript(argsFile, listCopy string) string {
	return fmt.Sprintf(`#!/bin/sh
printf '%%s\n' "$@" > %q
prev=""
for a in "$@"; do
  if [ "$prev" = "-i" ]; then cp "$a" %q; fi
  prev="$a"
done
eval "last=\${$#}"
: > "$last"
`, argsFile, listCopy)
}

// mediaStubScript answers audio extraction (-vn) by copying the WAV fixture
// to the destination and any other invocation by creating the output file.
func mediaStubScript(fixture string) string {
	return fmt.Sprintf(`#!/bin/sh
eval "last=\${$#}"
case " $* " in
  *" -vn "*) cp %q "$last";;
  *) : > "$last";;
esac
`, fixture)
}

// mediaStubScriptFailingOn behaves like mediaStubScript except that any
// invocation whose arguments contain needle fails.
func mediaStubScriptFailingOn(fixture, needle string) string {
	return fmt.Sprintf(`#!/bin/sh
case "$*" in
  *%s*) echo "extract exploded" >&2; exit 1;;
esac
eval "last=\${$#}"
case " $* " in
  *" -vn "*) cp %q "$last";;
  *) : > "$last";;
esac
`, needle, fixture)
}

func writeTextFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
