package milvus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/semantic-retrieval/std/v1/datastore"
	"github.com/semantic-retrieval/std/v1/logger"
	"github.com/semantic-retrieval/std/v1/observability"
)

// fakeMilvus implements milvusAPI in memory, recording calls and serving
// canned responses. The mutex covers the call counters because searches
// run concurrently.
type fakeMilvus struct {
	mu sync.Mutex

	hasCollection bool
	indexes       []string

	searchSets []milvusclient.ResultSet
	querySet   milvusclient.ResultSet

	insertErr    error
	searchErr    error
	hnswIndexErr error
	loadAwaitErr error
	describedIdx index.Index

	insertCalls   int
	searchCalls   int
	created       int
	dropped       int
	released      int
	loaded        int
	awaited       int
	indexCalls    int
	describeCalls int
	queryExprs    []string
	deleteExprs   []string
	insertedRows  int64
}

// stubLoadTask completes immediately, recording the wait on the fake.
type stubLoadTask struct {
	f *fakeMilvus
}

func (t stubLoadTask) Await(ctx context.Context) error {
	t.f.awaited++
	return t.f.loadAwaitErr
}

func (f *fakeMilvus) HasCollection(ctx context.Context, option milvusclient.HasCollectionOption, callOptions ...grpc.CallOption) (bool, error) {
	return f.hasCollection, nil
}

func (f *fakeMilvus) CreateCollection(ctx context.Context, option milvusclient.CreateCollectionOption, callOptions ...grpc.CallOption) error {
	f.created++
	f.hasCollection = true
	return nil
}

func (f *fakeMilvus) DropCollection(ctx context.Context, option milvusclient.DropCollectionOption, callOptions ...grpc.CallOption) error {
	f.dropped++
	f.hasCollection = false
	f.indexes = nil
	return nil
}

func (f *fakeMilvus) LoadCollection(ctx context.Context, option milvusclient.LoadCollectionOption, callOptions ...grpc.CallOption) (loadTask, error) {
	f.loaded++
	return stubLoadTask{f: f}, nil
}

func (f *fakeMilvus) ReleaseCollection(ctx context.Context, option milvusclient.ReleaseCollectionOption, callOptions ...grpc.CallOption) error {
	f.released++
	return nil
}

func (f *fakeMilvus) CreateIndex(ctx context.Context, option milvusclient.CreateIndexOption, callOptions ...grpc.CallOption) (*milvusclient.CreateIndexTask, error) {
	f.indexCalls++
	if f.indexCalls == 1 && f.hnswIndexErr != nil {
		return nil, f.hnswIndexErr
	}
	f.indexes = append(f.indexes, "vector_index")
	return &milvusclient.CreateIndexTask{}, nil
}

func (f *fakeMilvus) ListIndexes(ctx context.Context, option milvusclient.ListIndexOption, callOptions ...grpc.CallOption) ([]string, error) {
	return f.indexes, nil
}

func (f *fakeMilvus) DescribeIndex(ctx context.Context, option milvusclient.DescribeIndexOption, callOptions ...grpc.CallOption) (milvusclient.IndexDescription, error) {
	f.describeCalls++
	described := f.describedIdx
	if described == nil {
		described = index.NewHNSWIndex(entity.L2, hnswM, hnswEfConstruction)
	}
	return milvusclient.IndexDescription{Index: described}, nil
}

func (f *fakeMilvus) Insert(ctx context.Context, option milvusclient.InsertOption, callOptions ...grpc.CallOption) (milvusclient.InsertResult, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return milvusclient.InsertResult{}, f.insertErr
	}
	return milvusclient.InsertResult{InsertCount: f.insertedRows}, nil
}

func (f *fakeMilvus) Search(ctx context.Context, option milvusclient.SearchOption, callOptions ...grpc.CallOption) ([]milvusclient.ResultSet, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchSets, nil
}

func (f *fakeMilvus) Query(ctx context.Context, option milvusclient.QueryOption, callOptions ...grpc.CallOption) (milvusclient.ResultSet, error) {
	req, err := option.Request()
	if err != nil {
		return milvusclient.ResultSet{}, err
	}
	f.queryExprs = append(f.queryExprs, req.GetExpr())
	return f.querySet, nil
}

func (f *fakeMilvus) Delete(ctx context.Context, option milvusclient.DeleteOption, callOptions ...grpc.CallOption) (milvusclient.DeleteResult, error) {
	f.deleteExprs = append(f.deleteExprs, option.Request().GetExpr())
	return milvusclient.DeleteResult{DeleteCount: 2}, nil
}

func newTestStore(api milvusAPI) *Store {
	return &Store{
		api:      api,
		cfg:      DefaultConfig().withDefaults(),
		log:      logger.NewNop(),
		observer: observability.NoopObserver{},
	}
}

func testChunk(docID string, n int) datastore.DocumentChunk {
	return datastore.DocumentChunk{
		ID:        fmt.Sprintf("%s_%d", docID, n),
		Text:      fmt.Sprintf("chunk %d of %s", n, docID),
		Embedding: []float32{0.1, 0.2},
		Metadata:  datastore.DocumentChunkMetadata{DocumentID: docID},
	}
}

func TestUpsert_ReturnsDocumentIDs(t *testing.T) {
	fake := &fakeMilvus{insertedRows: 3}
	store := newTestStore(fake)

	ids, err := store.Upsert(context.Background(), map[string][]datastore.DocumentChunk{
		"doc-b": {testChunk("doc-b", 0)},
		"doc-a": {testChunk("doc-a", 0), testChunk("doc-a", 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"doc-a", "doc-b"}, ids)
	assert.Equal(t, 1, fake.insertCalls)
}

func TestUpsert_SkipsChunksWithoutRequiredFields(t *testing.T) {
	fake := &fakeMilvus{}
	store := newTestStore(fake)

	broken := testChunk("doc-x", 0)
	broken.Embedding = nil

	ids, err := store.Upsert(context.Background(), map[string][]datastore.DocumentChunk{
		"doc-x": {broken},
		"doc-y": {testChunk("doc-y", 0)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"doc-y"}, ids, "documents with no stored chunks are dropped from the result")
}

func TestUpsert_BatchesInserts(t *testing.T) {
	fake := &fakeMilvus{}
	store := newTestStore(fake)

	chunks := make([]datastore.DocumentChunk, 0, 2*upsertBatchSize+1)
	for i := 0; i < 2*upsertBatchSize+1; i++ {
		chunks = append(chunks, testChunk("doc-big", i))
	}

	_, err := store.Upsert(context.Background(), map[string][]datastore.DocumentChunk{
		"doc-big": chunks,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, fake.insertCalls)
}

func TestUpsert_EmptyInput(t *testing.T) {
	fake := &fakeMilvus{}
	store := newTestStore(fake)

	ids, err := store.Upsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Zero(t, fake.insertCalls)
}

func TestUpsert_InsertError(t *testing.T) {
	fake := &fakeMilvus{insertErr: errors.New("server unavailable")}
	store := newTestStore(fake)

	_, err := store.Upsert(context.Background(), map[string][]datastore.DocumentChunk{
		"doc-a": {testChunk("doc-a", 0)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert")
}

func searchResultSet() milvusclient.ResultSet {
	return milvusclient.ResultSet{
		ResultCount: 2,
		Scores:      []float32{0.1, 0.9},
		Fields: milvusclient.DataSet{
			column.NewColumnVarChar(fieldText, []string{"first", "second"}),
			column.NewColumnVarChar(fieldDocumentID, []string{"doc-a", "doc-b"}),
			column.NewColumnVarChar(fieldSourceID, []string{"s1", ""}),
			column.NewColumnVarChar(fieldChunkID, []string{"doc-a_0", "doc-b_3"}),
			column.NewColumnVarChar(fieldSource, []string{"email", "bogus"}),
			column.NewColumnVarChar(fieldURL, []string{"https://a", ""}),
			column.NewColumnInt64(fieldCreatedAt, []int64{1700000000, absentCreatedAt}),
			column.NewColumnVarChar(fieldAuthor, []string{"alice", ""}),
		},
	}
}

func TestQuery_ReassemblesChunks(t *testing.T) {
	fake := &fakeMilvus{searchSets: []milvusclient.ResultSet{searchResultSet()}}
	store := newTestStore(fake)

	results, err := store.Query(context.Background(), []datastore.QueryWithEmbedding{
		{Query: "what is up", Embedding: []float32{0.5, 0.5}, TopK: 2},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Results, 2)
	assert.Equal(t, "what is up", results[0].Query)

	first := results[0].Results[0]
	assert.Equal(t, "first", first.Text)
	assert.Equal(t, "doc-a", first.Metadata.DocumentID)
	assert.Equal(t, datastore.SourceEmail, first.Metadata.Source)
	require.NotNil(t, first.Metadata.CreatedAt)
	assert.Equal(t, int64(1700000000), first.Metadata.CreatedAt.Unix())
	assert.Equal(t, float32(0.1), first.Score)

	second := results[0].Results[1]
	assert.Empty(t, second.Metadata.Source, "unknown source values are dropped")
	assert.Nil(t, second.Metadata.CreatedAt, "sentinel timestamp maps to absent")
	assert.Equal(t, float32(0.9), second.Score)
}

func TestQuery_PreservesInputOrder(t *testing.T) {
	fake := &fakeMilvus{searchSets: []milvusclient.ResultSet{}}
	store := newTestStore(fake)

	queries := []datastore.QueryWithEmbedding{
		{Query: "q0", Embedding: []float32{1}},
		{Query: "q1", Embedding: []float32{2}},
		{Query: "q2", Embedding: []float32{3}},
	}
	results, err := store.Query(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, queries[i].Query, r.Query)
	}
	assert.Equal(t, 3, fake.searchCalls)
}

func TestQuery_SearchError(t *testing.T) {
	fake := &fakeMilvus{searchErr: errors.New("collection not loaded")}
	store := newTestStore(fake)

	_, err := store.Query(context.Background(), []datastore.QueryWithEmbedding{
		{Query: "q", Embedding: []float32{1}},
	})
	require.Error(t, err)
}

func pkResultSet(pks []int64) milvusclient.ResultSet {
	return milvusclient.ResultSet{
		ResultCount: len(pks),
		Fields: milvusclient.DataSet{
			column.NewColumnInt64(fieldPK, pks),
		},
	}
}

func TestDelete_ByDocumentIDs(t *testing.T) {
	fake := &fakeMilvus{querySet: pkResultSet([]int64{7, 42})}
	store := newTestStore(fake)

	ok, err := store.Delete(context.Background(), datastore.DeleteRequest{
		IDs: []string{"doc-a", "doc-b"},
	})
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, fake.queryExprs, 1)
	assert.Equal(t, `document_id in ["doc-a","doc-b"]`, fake.queryExprs[0])
	require.Len(t, fake.deleteExprs, 1)
	assert.Equal(t, "pk in [7,42]", fake.deleteExprs[0])
}

func TestDelete_ByFilter(t *testing.T) {
	fake := &fakeMilvus{querySet: pkResultSet([]int64{3})}
	store := newTestStore(fake)

	start := time.Unix(500, 0)
	ok, err := store.Delete(context.Background(), datastore.DeleteRequest{
		Filter: &datastore.DocumentMetadataFilter{
			Source:    datastore.SourceChat,
			StartDate: &start,
		},
	})
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, fake.queryExprs, 1)
	assert.Equal(t, `(source == "chat") and (created_at >= 500)`, fake.queryExprs[0])
}

func TestDelete_NoMatches(t *testing.T) {
	fake := &fakeMilvus{querySet: milvusclient.ResultSet{}}
	store := newTestStore(fake)

	ok, err := store.Delete(context.Background(), datastore.DeleteRequest{
		IDs: []string{"ghost"},
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fake.deleteExprs, "no delete issued when nothing matches")
}

func TestDelete_All(t *testing.T) {
	fake := &fakeMilvus{hasCollection: true}
	store := newTestStore(fake)

	ok, err := store.Delete(context.Background(), datastore.DeleteRequest{DeleteAll: true})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, fake.released)
	assert.Equal(t, 1, fake.dropped)
	assert.Equal(t, 1, fake.created, "collection is recreated after the drop")
	assert.Equal(t, 1, fake.loaded)
}

func TestEnsureCollection_AutoIndexFallback(t *testing.T) {
	fake := &fakeMilvus{hnswIndexErr: errors.New("invalid index type: HNSW")}
	store := newTestStore(fake)

	require.NoError(t, store.ensureCollection(context.Background(), false))
	assert.Equal(t, 2, fake.indexCalls, "AUTOINDEX attempted after HNSW rejection")
	assert.Equal(t, 1, fake.created)
	assert.Equal(t, 1, fake.loaded)
	assert.Equal(t, index.AUTOINDEX, store.indexType)
	assert.Empty(t, store.searchParams(), "AUTOINDEX searches carry no tuning params")
}

func TestEnsureCollection_WaitsForLoadCompletion(t *testing.T) {
	fake := &fakeMilvus{}
	store := newTestStore(fake)

	require.NoError(t, store.ensureCollection(context.Background(), false))
	assert.Equal(t, 1, fake.awaited, "bootstrap blocks until the load task completes")
}

func TestEnsureCollection_LoadFailurePropagates(t *testing.T) {
	fake := &fakeMilvus{loadAwaitErr: errors.New("load timed out")}
	store := newTestStore(fake)

	err := store.ensureCollection(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "await load")
}

func TestEnsureCollection_HNSWSearchParams(t *testing.T) {
	fake := &fakeMilvus{}
	store := newTestStore(fake)

	require.NoError(t, store.ensureCollection(context.Background(), false))
	assert.Equal(t, index.HNSW, store.indexType)
	assert.Equal(t, map[string]string{"ef": "10"}, store.searchParams())
}

func TestEnsureCollection_ExistingIndexDescribed(t *testing.T) {
	fake := &fakeMilvus{
		hasCollection: true,
		indexes:       []string{"vector_index"},
		describedIdx:  index.NewAutoIndex(entity.L2),
	}
	store := newTestStore(fake)

	require.NoError(t, store.ensureCollection(context.Background(), false))
	assert.Equal(t, 1, fake.describeCalls)
	assert.Zero(t, fake.indexCalls, "existing index is reused, not recreated")
	assert.Equal(t, index.AUTOINDEX, store.indexType)
	assert.Empty(t, store.searchParams())
}

func TestEnsureCollection_CreateNewDropsExisting(t *testing.T) {
	fake := &fakeMilvus{hasCollection: true, indexes: []string{"vector_index"}}
	store := newTestStore(fake)

	require.NoError(t, store.ensureCollection(context.Background(), true))
	assert.Equal(t, 1, fake.dropped)
	assert.Equal(t, 1, fake.created)
}
