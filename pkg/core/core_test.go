package core

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanText(t *testing.T) {
	sources := []Source{
		{ID: "doc1", Text: "手机：13812345678"},
		{ID: "doc2", Text: "没有任何敏感内容"},
	}
	batch, err := ScanText(context.Background(), sources, nil)
	require.NoError(t, err)
	require.Len(t, batch.Reports, 2)
	require.Len(t, batch.Reports[0].Findings, 1)
	require.Equal(t, Category("phone"), batch.Reports[0].Findings[0].Category)
	require.Empty(t, batch.Reports[1].Findings)
}

func TestScanText_CategoryFilter(t *testing.T) {
	sources := []Source{{ID: "doc", Text: "手机：13812345678 邮箱：a@b.cn"}}
	batch, err := ScanText(context.Background(), sources, []string{"email"})
	require.NoError(t, err)
	require.Len(t, batch.Reports[0].Findings, 1)
	require.Equal(t, Category("email"), batch.Reports[0].Findings[0].Category)
}

func TestScanText_UnknownCategory(t *testing.T) {
	_, err := ScanText(context.Background(), nil, []string{"fingerprint"})
	require.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestReportJSONRoundtrip(t *testing.T) {
	sources := []Source{{ID: "doc", Text: "身份证号：110101199003077512"}}
	batch, err := ScanText(context.Background(), sources, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, MarshalReport(&buf, batch))
	got, err := UnmarshalReport(&buf)
	require.NoError(t, err)
	require.Equal(t, batch, got)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 8)
	require.Equal(t, Category("phone"), cats[0])
	require.Equal(t, Category("ip_address"), cats[7])
}
