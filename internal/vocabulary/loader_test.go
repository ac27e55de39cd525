package vocabulary_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_vocabulary "github.com/at-ishikawa/kotoba/internal/mocks/vocabulary"
	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

func sampleTable() *vocabulary.Table {
	return &vocabulary.Table{
		Header: []string{"kategori", "hiragana", "romaji", "indo"},
		Rows: [][]string{
			{"hewan", "ねこ", "neko", "kucing"},
			{"hewan", "いぬ", "inu", "anjing"},
		},
	}
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m *mock_vocabulary.MockSource)
		loads     int
		wantLen   int
		wantErr   bool
	}{
		{
			name: "memoizes the store per source key",
			setupMock: func(m *mock_vocabulary.MockSource) {
				m.EXPECT().Key().Return("csv:Book4.csv").AnyTimes()
				m.EXPECT().Load(gomock.Any()).Return(sampleTable(), nil).Times(1)
			},
			loads:   3,
			wantLen: 2,
		},
		{
			name: "failed loads are wrapped and not cached",
			setupMock: func(m *mock_vocabulary.MockSource) {
				m.EXPECT().Key().Return("csv:missing.csv").AnyTimes()
				m.EXPECT().Load(gomock.Any()).Return(nil, errors.New("no such file")).Times(2)
			},
			loads:   2,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mock_vocabulary.NewMockSource(ctrl)
			tt.setupMock(source)

			loader := vocabulary.NewLoader()
			for i := 0; i < tt.loads; i++ {
				store, err := loader.Load(context.Background(), source)
				if tt.wantErr {
					require.Error(t, err)
					var loadErr *vocabulary.LoadError
					require.ErrorAs(t, err, &loadErr)
					assert.Equal(t, "csv:missing.csv", loadErr.Source)
					assert.Contains(t, err.Error(), "no such file")
					assert.Nil(t, store)
					continue
				}
				require.NoError(t, err)
				assert.Equal(t, tt.wantLen, store.Len())
			}
		})
	}
}

func TestLoader_LoadDistinctSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock_vocabulary.NewMockSource(ctrl)
	first.EXPECT().Key().Return("csv:a.csv").AnyTimes()
	first.EXPECT().Load(gomock.Any()).Return(sampleTable(), nil).Times(1)
	second := mock_vocabulary.NewMockSource(ctrl)
	second.EXPECT().Key().Return("csv:b.csv").AnyTimes()
	second.EXPECT().Load(gomock.Any()).Return(&vocabulary.Table{Header: []string{"romaji"}, Rows: [][]string{{"mizu"}}}, nil).Times(1)

	loader := vocabulary.NewLoader()
	a, err := loader.Load(context.Background(), first)
	require.NoError(t, err)
	b, err := loader.Load(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 1, b.Len())
	assert.NotSame(t, a, b)
}

func TestLoader_LoadConcurrently(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mock_vocabulary.NewMockSource(ctrl)
	source.EXPECT().Key().Return("csv:Book4.csv").AnyTimes()
	source.EXPECT().Load(gomock.Any()).Return(sampleTable(), nil).Times(1)

	loader := vocabulary.NewLoader()
	stores := make([]*vocabulary.Store, 8)
	var wg sync.WaitGroup
	for i := range stores {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store, err := loader.Load(context.Background(), source)
			assert.NoError(t, err)
			stores[i] = store
		}(i)
	}
	wg.Wait()

	for _, store := range stores {
		assert.Same(t, stores[0], store)
	}
}
