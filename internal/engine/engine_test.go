package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

// fakeExtractor serves canned text keyed by file basename and counts calls,
// so cache behavior is observable.
type fakeExtractor struct {
	mu    sync.Mutex
	texts map[string]string
	fail  map[string]error
	calls int
}

func (f *fakeExtractor) Name() string { return "fake" }

func (f *fakeExtractor) ExtractText(_ context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	base := filepath.Base(path)
	if err, ok := f.fail[base]; ok {
		return "", err
	}
	return f.texts[base], nil
}

func writeImage(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestScan_FindsAcrossBatch(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "contact.png", "image-bytes-1")
	writeImage(t, root, "server.png", "image-bytes-2")

	ex := &fakeExtractor{texts: map[string]string{
		"contact.png": "手机：13812345678",
		"server.png":  "服务器IP：192.168.1.100",
	}}

	res, err := Scan(context.Background(), Config{Root: root, NoCache: true}, ex)
	require.NoError(t, err)
	require.Equal(t, 2, res.ImagesScanned)
	require.Len(t, res.Report.Reports, 2)

	require.Equal(t, "contact.png", res.Report.Reports[0].Source)
	require.Len(t, res.Report.Reports[0].Findings, 1)
	require.Equal(t, types.CatPhone, res.Report.Reports[0].Findings[0].Category)

	require.Equal(t, "server.png", res.Report.Reports[1].Source)
	require.Len(t, res.Report.Reports[1].Findings, 1)
	require.Equal(t, types.CatIPAddress, res.Report.Reports[1].Findings[0].Category)
}

func TestScan_SingleFileRoot(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "card.png", "image-bytes")
	ex := &fakeExtractor{texts: map[string]string{"card.png": "身份证号：110101199003077512"}}

	res, err := Scan(context.Background(), Config{Root: filepath.Join(root, "card.png"), NoCache: true}, ex)
	require.NoError(t, err)
	require.Equal(t, 1, res.ImagesScanned)
	require.Equal(t, "card.png", res.Report.Reports[0].Source)
	require.Len(t, res.Report.Reports[0].Findings, 1)
}

func TestScan_CacheSkipsOCROnSecondRun(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "a.png", "bytes-a")
	writeImage(t, root, "b.png", "bytes-b")
	ex := &fakeExtractor{texts: map[string]string{
		"a.png": "手机：13812345678",
		"b.png": "邮箱：zhangsan@corp.cn",
	}}

	first, err := Scan(context.Background(), Config{Root: root}, ex)
	require.NoError(t, err)
	require.Equal(t, 0, first.CacheHits)
	require.Equal(t, 2, ex.calls)

	second, err := Scan(context.Background(), Config{Root: root}, ex)
	require.NoError(t, err)
	require.Equal(t, 2, second.CacheHits)
	require.Equal(t, 2, ex.calls, "cached images must not hit the extractor again")

	// Cached text still runs through detection.
	require.Equal(t, first.Report.Reports, second.Report.Reports)
}

func TestScan_ChangedBytesInvalidateCache(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "a.png", "bytes-v1")
	ex := &fakeExtractor{texts: map[string]string{"a.png": "手机：13812345678"}}

	_, err := Scan(context.Background(), Config{Root: root}, ex)
	require.NoError(t, err)
	require.Equal(t, 1, ex.calls)

	writeImage(t, root, "a.png", "bytes-v2")
	res, err := Scan(context.Background(), Config{Root: root}, ex)
	require.NoError(t, err)
	require.Equal(t, 0, res.CacheHits)
	require.Equal(t, 2, ex.calls)
}

func TestScan_OCRFailureBecomesFailedReport(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "ok.png", "bytes-ok")
	writeImage(t, root, "broken.png", "bytes-broken")
	ex := &fakeExtractor{
		texts: map[string]string{"ok.png": "手机：13812345678"},
		fail:  map[string]error{"broken.png": errors.New("tesseract: empty page")},
	}

	res, err := Scan(context.Background(), Config{Root: root, NoCache: true}, ex)
	require.NoError(t, err)
	require.Len(t, res.Report.Reports, 2)

	require.True(t, res.Report.Reports[0].Failed)
	require.Contains(t, res.Report.Reports[0].Reason, "empty page")
	require.False(t, res.Report.Reports[1].Failed)
	require.NotEmpty(t, res.Report.Reports[1].Findings)
}

func TestScan_MinConfidenceFilter(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "a.png", "bytes")
	// A bare phone scores 0.7, a test-style email 0.3.
	ex := &fakeExtractor{texts: map[string]string{"a.png": "13812345678 test@corp.cn"}}

	res, err := Scan(context.Background(), Config{Root: root, NoCache: true, MinConfidence: 0.5}, ex)
	require.NoError(t, err)
	require.Len(t, res.Report.Reports, 1)
	require.Len(t, res.Report.Reports[0].Findings, 1)
	require.Equal(t, types.CatPhone, res.Report.Reports[0].Findings[0].Category)
}

func TestScan_UnknownCategory(t *testing.T) {
	root := t.TempDir()
	writeImage(t, root, "a.png", "bytes")
	ex := &fakeExtractor{texts: map[string]string{"a.png": "x"}}

	_, err := Scan(context.Background(), Config{Root: root, NoCache: true, Categories: []string{"dna"}}, ex)
	require.Error(t, err)
}

func TestScan_NoImages(t *testing.T) {
	root := t.TempDir()
	ex := &fakeExtractor{}
	_, err := Scan(context.Background(), Config{Root: root, NoCache: true}, ex)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no image files")
}

func TestFastHash(t *testing.T) {
	h1 := fastHash([]byte("hello"))
	h2 := fastHash([]byte("hello"))
	h3 := fastHash([]byte("world"))
	require.Equal(t, h1, h2)
	require.NotEqual(t, h1, h3)
	require.Len(t, h1, 16)
	require.Equal(t, "0000000000000000", fastHash(nil))
}
