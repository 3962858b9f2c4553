package registration_test

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"petdoc-id/internal/adapters/storage/memory"
	"petdoc-id/internal/domain/registration"
	"petdoc-id/internal/platform/apperr"
)

func TestFormatCode_Examples(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "SP-0001-001"},
		{999, "SP-0001-999"},
		{1000, "SP-0002-001"},
		{1998, "SP-0002-999"},
		{1999, "SP-0003-001"},
		{10, "SP-0001-010"},
		{7001, "SP-0008-008"},
		{0, "SP-0000-000"},
		{-4, "SP-0000-000"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, registration.FormatCode("SP", tc.n), "n=%d", tc.n)
	}
}

var codeRe = regexp.MustCompile(`^([A-Z]+)-(\d{4,})-(\d{3})$`)

func TestFormatCode_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int64Range(1, 50_000_000).Draw(t, "n")
		code := registration.FormatCode("RJ", n)

		m := codeRe.FindStringSubmatch(code)
		if m == nil {
			t.Fatalf("unexpected format %q", code)
		}
		// base 10 explícita: "010" no es octal
		batch, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			t.Fatalf("batch %q: %v", m[2], err)
		}
		item, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			t.Fatalf("item %q: %v", m[3], err)
		}

		if item < 1 || item > registration.BatchSize {
			t.Fatalf("item out of range: %d", item)
		}
		if got := (batch-1)*registration.BatchSize + item; got != n {
			t.Fatalf("decoded %d, want %d", got, n)
		}
	})
}

func TestNextCode_SequentialPerRegion(t *testing.T) {
	svc := registration.NewService(memory.NewCounterStore(), "memory")
	ctx := context.Background()

	_, code, err := svc.NextCode(ctx, " rj ")
	require.NoError(t, err)
	require.Equal(t, "RJ-0001-001", code)

	seq, code, err := svc.NextCode(ctx, "RJ")
	require.NoError(t, err)
	require.Equal(t, int64(2), seq)
	require.Equal(t, "RJ-0001-002", code)

	_, code, err = svc.NextCode(ctx, "sp")
	require.NoError(t, err)
	require.Equal(t, "SP-0001-001", code)
}

func TestNextCode_RejectsEmptyRegion(t *testing.T) {
	svc := registration.NewService(memory.NewCounterStore(), "memory")

	_, _, err := svc.NextCode(context.Background(), "   ")
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestNextCode_ConcurrentCallsAreUnique(t *testing.T) {
	svc := registration.NewService(memory.NewCounterStore(), "memory")
	ctx := context.Background()

	const n = 200
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = make(map[string]struct{}, n)
		seqs  = make(map[int64]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, code, err := svc.NextCode(ctx, "MG")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			codes[code] = struct{}{}
			seqs[seq] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, codes, n)
	for i := int64(1); i <= n; i++ {
		_, ok := seqs[i]
		require.True(t, ok, "missing sequence %d", i)
	}
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestNextCode_StoreFailure(t *testing.T) {
	svc := registration.NewService(failingStore{}, "postgres")

	_, _, err := svc.NextCode(context.Background(), "SP")
	require.Error(t, err)
	require.Equal(t, "internal error", apperr.Message(err))
}
