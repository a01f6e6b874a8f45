package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/docker/go-connections/nat"
	"github.com/geocontent/backend/lib/exception"
	modeldb "github.com/geocontent/backend/lib/models/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDbName = "test_db"
	testDbUser = "test_user"
	testDbPass = "test_password"
)

func preparePostgres(t *testing.T) PostgresOptions {
	t.Helper()
	ctx := context.Background()
	container, err := testcontainers.Run(
		ctx, "postgres:alpine",
		testcontainers.WithExposedPorts("5432/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", testDbUser, testDbPass, host, port.Port(), testDbName)
			}).
				WithStartupTimeout(time.Second*30).
				WithQuery("SELECT 10"),
		),
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_PASSWORD": testDbPass,
			"POSTGRES_USER":     testDbUser,
			"POSTGRES_DB":       testDbName,
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	mapped, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := strconv.Atoi(mapped.Port())
	require.NoError(t, err)

	return PostgresOptions{
		Username: testDbUser,
		Password: testDbPass,
		Host:     host,
		Port:     port,
		Database: testDbName,
	}
}

func TestAllDataStores(t *testing.T) {
	datastores := map[string]func(t *testing.T) DataStore{
		"Memory": func(t *testing.T) DataStore {
			return NewMemoryDataStore()
		},
		"SQLite": func(t *testing.T) DataStore {
			sqliteDB, err := NewSQLiteDB(":memory:", nil)
			require.NoError(t, err)
			return sqliteDB
		},
	}

	if os.Getenv("GEOCONTENT_TEST_POSTGRES") == "1" && !testing.Short() {
		options := preparePostgres(t)
		datastores["Postgres"] = func(t *testing.T) DataStore {
			postgresDB, err := NewPostgresDB(options, nil)
			require.NoError(t, err)
			_, err = postgresDB.sqlDB.Exec("TRUNCATE TABLE node_status, node, chain RESTART IDENTITY CASCADE")
			require.NoError(t, err)
			_, err = postgresDB.sqlDB.Exec("DELETE FROM language WHERE code = 'rm'")
			require.NoError(t, err)
			return postgresDB
		}
	}

	for name, newDS := range datastores {
		t.Run(name, func(t *testing.T) {
			runAllDataStoreTests(t, newDS)
		})
	}
}

func testRun(t *testing.T, name string, testFunc func(t *testing.T, ds DataStore), newDS func(t *testing.T) DataStore) {
	t.Run(name, func(t *testing.T) {
		ds := newDS(t)
		t.Cleanup(func() {
			if err := ds.Close(); err != nil {
				t.Fatalf("Failed to close DataStore: %v", err)
			}
		})
		testFunc(t, ds)
	})
}

func runAllDataStoreTests(t *testing.T, newDS func(t *testing.T) DataStore) {
	testRun(t, "CreateAndGetChain", testCreateAndGetChain, newDS)
	testRun(t, "CreateChainUnknownLanguage", testCreateChainUnknownLanguage, newDS)
	testRun(t, "GetMissingChain", testGetMissingChain, newDS)
	testRun(t, "AppendMovesLast", testAppendMovesLast, newDS)
	testRun(t, "AppendWithStaleLastConflicts", testAppendWithStaleLastConflicts, newDS)
	testRun(t, "AppendSupersededPreviousConflicts", testAppendSupersededPreviousConflicts, newDS)
	testRun(t, "AppendToMissingChain", testAppendToMissingChain, newDS)
	testRun(t, "ConcurrentAppendsOneWinner", testConcurrentAppendsOneWinner, newDS)
	testRun(t, "GetNodeByPrevious", testGetNodeByPrevious, newDS)
	testRun(t, "SetCurrentNode", testSetCurrentNode, newDS)
	testRun(t, "SetCurrentNodeForeignNode", testSetCurrentNodeForeignNode, newDS)
	testRun(t, "SetCurrentNodeWithStatusChangeIsAtomic", testSetCurrentNodeWithStatusChangeIsAtomic, newDS)
	testRun(t, "SetCurrentNodeStaleExpectation", testSetCurrentNodeStaleExpectation, newDS)
	testRun(t, "EmptyListingsAreNotNil", testEmptyListingsAreNotNil, newDS)
	testRun(t, "UpdateNodeStatus", testUpdateNodeStatus, newDS)
	testRun(t, "RemoveChainCascades", testRemoveChainCascades, newDS)
	testRun(t, "QueryVisibleChains", testQueryVisibleChains, newDS)
	testRun(t, "QueryPendingNodes", testQueryPendingNodes, newDS)
	testRun(t, "Languages", testLanguages, newDS)
	testRun(t, "CancelledContext", testCancelledContext, newDS)
}

func newChain(kind string, language string) modeldb.ChainDB {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return modeldb.ChainDB{
		ID:        uuid.NewString(),
		Kind:      kind,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func appendNode(t *testing.T, ds DataStore, chainID string, previous *string, value string) modeldb.NodeDB {
	t.Helper()
	node := modeldb.NodeDB{
		ID:         uuid.NewString(),
		ChainID:    chainID,
		PreviousID: previous,
		Value:      value,
		AuthorID:   gofakeit.UUID(),
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	status := modeldb.NodeStatusDB{Status: modeldb.StatusPending, UpdatedAt: node.CreatedAt}
	require.NoError(t, ds.AppendNode(context.Background(), node, previous, status))
	return node
}

func createChain(t *testing.T, ds DataStore, kind string) modeldb.ChainDB {
	t.Helper()
	chain := newChain(kind, "en")
	require.NoError(t, ds.CreateChain(context.Background(), chain))
	return chain
}

func testCreateAndGetChain(t *testing.T, ds DataStore) {
	chain := newChain("tag", "de")
	require.NoError(t, ds.CreateChain(context.Background(), chain))

	got, err := ds.GetChain(context.Background(), chain.ID)
	require.NoError(t, err)
	assert.Equal(t, chain.ID, got.ID)
	assert.Equal(t, "tag", got.Kind)
	assert.Equal(t, "de", got.Language)
	assert.Nil(t, got.CurrentID)
	assert.Nil(t, got.LastID)
	assert.True(t, chain.CreatedAt.Equal(got.CreatedAt))
}

func testCreateChainUnknownLanguage(t *testing.T, ds DataStore) {
	err := ds.CreateChain(context.Background(), newChain("tag", "xx"))
	var notFound *exception.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, LanguageResource, notFound.Resource)
}

func testGetMissingChain(t *testing.T, ds DataStore) {
	_, err := ds.GetChain(context.Background(), "missing")
	var notFound *exception.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func testAppendMovesLast(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "waypoint")
	first := appendNode(t, ds, chain.ID, nil, `"v1"`)
	second := appendNode(t, ds, chain.ID, &first.ID, `"v2"`)

	got, err := ds.GetChain(context.Background(), chain.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastID)
	assert.Equal(t, second.ID, *got.LastID)
	assert.Nil(t, got.CurrentID)

	node, err := ds.GetNode(context.Background(), second.ID)
	require.NoError(t, err)
	require.NotNil(t, node.PreviousID)
	assert.Equal(t, first.ID, *node.PreviousID)
	assert.Equal(t, `"v2"`, node.Value)

	status, err := ds.GetNodeStatus(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, modeldb.StatusPending, status.Status)
}

func testAppendWithStaleLastConflicts(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "tag")
	first := appendNode(t, ds, chain.ID, nil, `"a"`)

	// a second writer that still believes the chain is empty
	stale := modeldb.NodeDB{
		ID:        uuid.NewString(),
		ChainID:   chain.ID,
		Value:     `"b"`,
		AuthorID:  "writer-2",
		CreatedAt: time.Now().UTC(),
	}
	err := ds.AppendNode(context.Background(), stale, nil, modeldb.NodeStatusDB{Status: modeldb.StatusPending})
	var conflict *exception.ConflictError
	require.ErrorAs(t, err, &conflict)

	got, err := ds.GetChain(context.Background(), chain.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, *got.LastID)

	_, err = ds.GetNode(context.Background(), stale.ID)
	var notFound *exception.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func testAppendSupersededPreviousConflicts(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "tag")
	first := appendNode(t, ds, chain.ID, nil, `"a"`)
	second := appendNode(t, ds, chain.ID, &first.ID, `"b"`)

	// previous points at an already superseded node while the expected
	// last is correct
	fork := modeldb.NodeDB{
		ID:         uuid.NewString(),
		ChainID:    chain.ID,
		PreviousID: &first.ID,
		Value:      `"fork"`,
		AuthorID:   "writer-2",
		CreatedAt:  time.Now().UTC(),
	}
	err := ds.AppendNode(context.Background(), fork, &second.ID, modeldb.NodeStatusDB{Status: modeldb.StatusPending})
	var conflict *exception.ConflictError
	require.ErrorAs(t, err, &conflict)

	got, err := ds.GetChain(context.Background(), chain.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, *got.LastID)
}

func testAppendToMissingChain(t *testing.T, ds DataStore) {
	node := modeldb.NodeDB{ID: uuid.NewString(), ChainID: "missing", Value: `"x"`, AuthorID: "a", CreatedAt: time.Now()}
	err := ds.AppendNode(context.Background(), node, nil, modeldb.NodeStatusDB{Status: modeldb.StatusPending})
	var notFound *exception.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func testConcurrentAppendsOneWinner(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "media")
	nodeA := appendNode(t, ds, chain.ID, nil, `"a"`)

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	ids := make([]string, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			node := modeldb.NodeDB{
				ID:         uuid.NewString(),
				ChainID:    chain.ID,
				PreviousID: &nodeA.ID,
				Value:      fmt.Sprintf(`"w%d"`, i),
				AuthorID:   gofakeit.UUID(),
				CreatedAt:  time.Now().UTC(),
			}
			ids[i] = node.ID
			errs[i] = ds.AppendNode(context.Background(), node, &nodeA.ID,
				modeldb.NodeStatusDB{Status: modeldb.StatusPending, UpdatedAt: node.CreatedAt})
		}(i)
	}
	wg.Wait()

	winner := ""
	for i, err := range errs {
		if err == nil {
			assert.Empty(t, winner, "more than one append succeeded")
			winner = ids[i]
			continue
		}
		var conflict *exception.ConflictError
		assert.ErrorAs(t, err, &conflict)
	}
	require.NotEmpty(t, winner)

	got, err := ds.GetChain(context.Background(), chain.ID)
	require.NoError(t, err)
	assert.Equal(t, winner, *got.LastID)
}

func testGetNodeByPrevious(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "tag")
	first := appendNode(t, ds, chain.ID, nil, `"a"`)

	next, err := ds.GetNodeByPrevious(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Nil(t, next)

	second := appendNode(t, ds, chain.ID, &first.ID, `"b"`)
	next, err = ds.GetNodeByPrevious(context.Background(), first.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, second.ID, next.ID)
}

func testSetCurrentNode(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "static")
	first := appendNode(t, ds, chain.ID, nil, `"a"`)

	require.NoError(t, ds.SetCurrentNode(context.Background(), chain.ID, nil, &first.ID, nil))
	got, err := ds.GetChain(context.Background(), chain.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentID)
	assert.Equal(t, first.ID, *got.CurrentID)

	require.NoError(t, ds.SetCurrentNode(context.Background(), chain.ID, &first.ID, nil, nil))
	got, err = ds.GetChain(context.Background(), chain.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CurrentID)
}

func testSetCurrentNodeForeignNode(t *testing.T, ds DataStore) {
	chainA := createChain(t, ds, "tag")
	chainB := createChain(t, ds, "tag")
	foreign := appendNode(t, ds, chainB.ID, nil, `"b"`)

	err := ds.SetCurrentNode(context.Background(), chainA.ID, nil, &foreign.ID, nil)
	var notFound *exception.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func testSetCurrentNodeWithStatusChangeIsAtomic(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "tag")
	node := appendNode(t, ds, chain.ID, nil, `"a"`)
	moderator := "mod-1"

	// wrong expected status: neither the status nor the pointer may move
	err := ds.SetCurrentNode(context.Background(), chain.ID, nil, &node.ID, &modeldb.StatusChange{
		NodeID: node.ID, From: modeldb.StatusVerified, To: modeldb.StatusDeleteRequested, At: time.Now(),
	})
	var conflict *exception.ConflictError
	require.ErrorAs(t, err, &conflict)
	got, err := ds.GetChain(context.Background(), chain.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CurrentID)

	require.NoError(t, ds.SetCurrentNode(context.Background(), chain.ID, nil, &node.ID, &modeldb.StatusChange{
		NodeID: node.ID, From: modeldb.StatusPending, To: modeldb.StatusVerified, ModeratorID: &moderator, At: time.Now(),
	}))
	status, err := ds.GetNodeStatus(context.Background(), node.ID)
	require.NoError(t, err)
	assert.Equal(t, modeldb.StatusVerified, status.Status)
	require.NotNil(t, status.ModeratorID)
	assert.Equal(t, moderator, *status.ModeratorID)
}

func testSetCurrentNodeStaleExpectation(t *testing.T, ds DataStore) {
	ctx := context.Background()
	chain := createChain(t, ds, "waypoint")
	first := appendNode(t, ds, chain.ID, nil, `"a"`)
	second := appendNode(t, ds, chain.ID, &first.ID, `"b"`)
	require.NoError(t, ds.SetCurrentNode(ctx, chain.ID, nil, &second.ID, nil))

	// a writer that still believes the chain has no current revision loses
	err := ds.SetCurrentNode(ctx, chain.ID, nil, &first.ID, &modeldb.StatusChange{
		NodeID: first.ID, From: modeldb.StatusPending, To: modeldb.StatusVerified, At: time.Now(),
	})
	var conflict *exception.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, chain.ID, conflict.ChainId)

	got, err := ds.GetChain(ctx, chain.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentID)
	assert.Equal(t, second.ID, *got.CurrentID)
	status, err := ds.GetNodeStatus(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, modeldb.StatusPending, status.Status)

	err = ds.SetCurrentNode(ctx, "missing", nil, &first.ID, nil)
	var notFound *exception.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func testEmptyListingsAreNotNil(t *testing.T, ds DataStore) {
	ctx := context.Background()
	chains, err := ds.QueryVisibleChains(ctx, "static", "")
	require.NoError(t, err)
	assert.NotNil(t, chains)
	assert.Empty(t, chains)

	pending, err := ds.QueryPendingNodes(ctx, "static")
	require.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
}

func TestSQLiteMissingStatusRowIsNotFound(t *testing.T) {
	sqliteDB, err := NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteDB.Close() })

	chain := createChain(t, sqliteDB, "tag")
	node := appendNode(t, sqliteDB, chain.ID, nil, `"a"`)
	_, err = sqliteDB.sqlDB.Exec("DELETE FROM node_status WHERE node_id = ?", node.ID)
	require.NoError(t, err)

	err = sqliteDB.UpdateNodeStatus(context.Background(), modeldb.StatusChange{
		NodeID: node.ID, From: modeldb.StatusPending, To: modeldb.StatusVerified, At: time.Now(),
	})
	var notFound *exception.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, NodeStatusResource, notFound.Resource)
}

func testUpdateNodeStatus(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "tag")
	node := appendNode(t, ds, chain.ID, nil, `"a"`)

	require.NoError(t, ds.UpdateNodeStatus(context.Background(), modeldb.StatusChange{
		NodeID: node.ID, From: modeldb.StatusPending, To: modeldb.StatusRejected, At: time.Now(),
	}))

	err := ds.UpdateNodeStatus(context.Background(), modeldb.StatusChange{
		NodeID: node.ID, From: modeldb.StatusPending, To: modeldb.StatusVerified, At: time.Now(),
	})
	var conflict *exception.ConflictError
	require.ErrorAs(t, err, &conflict)

	err = ds.UpdateNodeStatus(context.Background(), modeldb.StatusChange{
		NodeID: "missing", From: modeldb.StatusPending, To: modeldb.StatusVerified, At: time.Now(),
	})
	var notFound *exception.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func testRemoveChainCascades(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "tag")
	first := appendNode(t, ds, chain.ID, nil, `"a"`)
	second := appendNode(t, ds, chain.ID, &first.ID, `"b"`)
	other := createChain(t, ds, "tag")
	survivor := appendNode(t, ds, other.ID, nil, `"c"`)

	require.NoError(t, ds.RemoveChain(context.Background(), chain.ID))

	var notFound *exception.NotFoundError
	_, err := ds.GetChain(context.Background(), chain.ID)
	assert.ErrorAs(t, err, &notFound)
	for _, id := range []string{first.ID, second.ID} {
		_, err = ds.GetNode(context.Background(), id)
		assert.ErrorAs(t, err, &notFound)
		_, err = ds.GetNodeStatus(context.Background(), id)
		assert.ErrorAs(t, err, &notFound)
	}

	_, err = ds.GetNode(context.Background(), survivor.ID)
	assert.NoError(t, err)

	err = ds.RemoveChain(context.Background(), chain.ID)
	assert.ErrorAs(t, err, &notFound)
}

func testQueryVisibleChains(t *testing.T, ds DataStore) {
	ctx := context.Background()
	verify := func(chainID string, nodeID string) {
		require.NoError(t, ds.SetCurrentNode(ctx, chainID, nil, &nodeID, &modeldb.StatusChange{
			NodeID: nodeID, From: modeldb.StatusPending, To: modeldb.StatusVerified, At: time.Now(),
		}))
	}

	visible := createChain(t, ds, "tag")
	verify(visible.ID, appendNode(t, ds, visible.ID, nil, `"a"`).ID)

	pendingOnly := createChain(t, ds, "tag")
	appendNode(t, ds, pendingOnly.ID, nil, `"b"`)

	otherKind := createChain(t, ds, "media")
	verify(otherKind.ID, appendNode(t, ds, otherKind.ID, nil, `"c"`).ID)

	inactive := newChain("tag", "it")
	require.NoError(t, ds.CreateChain(ctx, inactive))
	verify(inactive.ID, appendNode(t, ds, inactive.ID, nil, `"d"`).ID)

	german := newChain("tag", "de")
	require.NoError(t, ds.CreateChain(ctx, german))
	verify(german.ID, appendNode(t, ds, german.ID, nil, `"e"`).ID)

	chains, err := ds.QueryVisibleChains(ctx, "tag", "")
	require.NoError(t, err)
	ids := make([]string, 0, len(chains))
	for _, c := range chains {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{visible.ID, german.ID}, ids)

	chains, err = ds.QueryVisibleChains(ctx, "tag", "de")
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, german.ID, chains[0].ID)
}

func testQueryPendingNodes(t *testing.T, ds DataStore) {
	tagChain := createChain(t, ds, "tag")
	tagNode := appendNode(t, ds, tagChain.ID, nil, `"a"`)
	mediaChain := createChain(t, ds, "media")
	mediaNode := appendNode(t, ds, mediaChain.ID, nil, `"b"`)

	pending, err := ds.QueryPendingNodes(context.Background(), "tag")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, tagNode.ID, pending[0].ID)
	assert.Equal(t, "tag", pending[0].Kind)
	assert.Equal(t, "en", pending[0].Language)

	pending, err = ds.QueryPendingNodes(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, ds.UpdateNodeStatus(context.Background(), modeldb.StatusChange{
		NodeID: mediaNode.ID, From: modeldb.StatusPending, To: modeldb.StatusRejected, At: time.Now(),
	}))
	pending, err = ds.QueryPendingNodes(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func testLanguages(t *testing.T, ds DataStore) {
	ctx := context.Background()
	languages, err := ds.GetLanguages(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, languages)

	require.NoError(t, ds.SaveLanguage(ctx, modeldb.LanguageDB{Code: "rm", Name: "Rumantsch", Active: false}))
	require.NoError(t, ds.SaveLanguage(ctx, modeldb.LanguageDB{Code: "rm", Name: "Rumantsch Grischun", Active: true}))

	language, err := ds.GetLanguage(ctx, "rm")
	require.NoError(t, err)
	assert.Equal(t, "Rumantsch Grischun", language.Name)
	assert.True(t, language.Active)

	_, err = ds.GetLanguage(ctx, "zz")
	var notFound *exception.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func testCancelledContext(t *testing.T, ds DataStore) {
	chain := createChain(t, ds, "tag")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	node := modeldb.NodeDB{ID: uuid.NewString(), ChainID: chain.ID, Value: `"x"`, AuthorID: "a", CreatedAt: time.Now()}
	err := ds.AppendNode(ctx, node, nil, modeldb.NodeStatusDB{Status: modeldb.StatusPending})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	got, err := ds.GetChain(context.Background(), chain.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastID)
}
