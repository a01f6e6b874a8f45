package db

import (
	"context"
	"sort"
	"sync"

	"github.com/geocontent/backend/lib/db/migrations"
	"github.com/geocontent/backend/lib/exception"
	"github.com/geocontent/backend/lib/models/db"
)

type MemoryDataStore struct {
	mu            sync.RWMutex
	chainStore    map[string]db.ChainDB
	nodeStore     map[string]db.NodeDB
	statusStore   map[string]db.NodeStatusDB
	languageStore map[string]db.LanguageDB
	// previous node id -> successor node id
	successors map[string]string
}

func NewMemoryDataStore() *MemoryDataStore {
	store := &MemoryDataStore{
		chainStore:    make(map[string]db.ChainDB),
		nodeStore:     make(map[string]db.NodeDB),
		statusStore:   make(map[string]db.NodeStatusDB),
		languageStore: make(map[string]db.LanguageDB),
		successors:    make(map[string]string),
	}
	for _, language := range migrations.DefaultLanguages {
		store.languageStore[language.Code] = language
	}
	return store
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func sameID(a *string, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ============== CHAIN METHODS ==============

func (m *MemoryDataStore) CreateChain(ctx context.Context, chain db.ChainDB) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.languageStore[chain.Language]; !ok {
		return exception.NewNotFoundError(LanguageResource, chain.Language)
	}
	if _, ok := m.chainStore[chain.ID]; ok {
		return exception.NewConflictError(chain.ID, "chain already exists")
	}
	chain.CurrentID = copyID(chain.CurrentID)
	chain.LastID = copyID(chain.LastID)
	m.chainStore[chain.ID] = chain
	return nil
}

func (m *MemoryDataStore) GetChain(ctx context.Context, chainID string) (*db.ChainDB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	chain, ok := m.chainStore[chainID]
	if !ok {
		return nil, exception.NewNotFoundError(ChainResource, chainID)
	}
	return &chain, nil
}

func (m *MemoryDataStore) RemoveChain(ctx context.Context, chainID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.chainStore[chainID]; !ok {
		return exception.NewNotFoundError(ChainResource, chainID)
	}
	for id, node := range m.nodeStore {
		if node.ChainID != chainID {
			continue
		}
		delete(m.nodeStore, id)
		delete(m.statusStore, id)
		if node.PreviousID != nil {
			delete(m.successors, *node.PreviousID)
		}
	}
	delete(m.chainStore, chainID)
	return nil
}

func (m *MemoryDataStore) SetCurrentNode(ctx context.Context, chainID string, expectedCurrent *string, nodeID *string, change *db.StatusChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	chain, ok := m.chainStore[chainID]
	if !ok {
		return exception.NewNotFoundError(ChainResource, chainID)
	}
	if !sameID(chain.CurrentID, expectedCurrent) {
		return exception.NewConflictError(chainID, CurrentMovedError)
	}
	if nodeID != nil {
		node, ok := m.nodeStore[*nodeID]
		if !ok || node.ChainID != chainID {
			return exception.NewNotFoundError(NodeResource, *nodeID)
		}
	}
	if change != nil {
		if err := m.checkStatusChange(*change); err != nil {
			return err
		}
		m.applyStatusChange(*change)
	}
	chain.CurrentID = copyID(nodeID)
	m.chainStore[chainID] = chain
	return nil
}

// ============== NODE METHODS ==============

func (m *MemoryDataStore) AppendNode(ctx context.Context, node db.NodeDB, expectedLast *string, status db.NodeStatusDB) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	chain, ok := m.chainStore[node.ChainID]
	if !ok {
		return exception.NewNotFoundError(ChainResource, node.ChainID)
	}
	if node.PreviousID != nil {
		if _, taken := m.successors[*node.PreviousID]; taken {
			return exception.NewConflictError(node.ChainID, RevisionSupersededError)
		}
	}
	if !sameID(chain.LastID, expectedLast) {
		return exception.NewConflictError(node.ChainID, ChainMovedError)
	}

	node.PreviousID = copyID(node.PreviousID)
	m.nodeStore[node.ID] = node
	if node.PreviousID != nil {
		m.successors[*node.PreviousID] = node.ID
	}
	status.NodeID = node.ID
	m.statusStore[node.ID] = status

	chain.LastID = copyID(&node.ID)
	chain.UpdatedAt = node.CreatedAt
	m.chainStore[node.ChainID] = chain
	return nil
}

func (m *MemoryDataStore) GetNode(ctx context.Context, nodeID string) (*db.NodeDB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, ok := m.nodeStore[nodeID]
	if !ok {
		return nil, exception.NewNotFoundError(NodeResource, nodeID)
	}
	return &node, nil
}

func (m *MemoryDataStore) GetNodeByPrevious(ctx context.Context, previousID string) (*db.NodeDB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	nextID, ok := m.successors[previousID]
	if !ok {
		return nil, nil
	}
	node := m.nodeStore[nextID]
	return &node, nil
}

// ============== MODERATION METHODS ==============

func (m *MemoryDataStore) GetNodeStatus(ctx context.Context, nodeID string) (*db.NodeStatusDB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	status, ok := m.statusStore[nodeID]
	if !ok {
		return nil, exception.NewNotFoundError(NodeStatusResource, nodeID)
	}
	return &status, nil
}

func (m *MemoryDataStore) UpdateNodeStatus(ctx context.Context, change db.StatusChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkStatusChange(change); err != nil {
		return err
	}
	m.applyStatusChange(change)
	return nil
}

func (m *MemoryDataStore) checkStatusChange(change db.StatusChange) error {
	current, ok := m.statusStore[change.NodeID]
	if !ok {
		return exception.NewNotFoundError(NodeStatusResource, change.NodeID)
	}
	if current.Status != change.From {
		chainID := m.nodeStore[change.NodeID].ChainID
		return exception.NewConflictError(chainID, StatusMovedError)
	}
	return nil
}

func (m *MemoryDataStore) applyStatusChange(change db.StatusChange) {
	m.statusStore[change.NodeID] = db.NodeStatusDB{
		NodeID:      change.NodeID,
		Status:      change.To,
		ModeratorID: copyID(change.ModeratorID),
		UpdatedAt:   change.At,
	}
}

func (m *MemoryDataStore) QueryVisibleChains(ctx context.Context, kind string, language string) ([]db.ChainDB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	chains := make([]db.ChainDB, 0)
	for _, chain := range m.chainStore {
		if chain.Kind != kind || chain.CurrentID == nil {
			continue
		}
		if language != "" && chain.Language != language {
			continue
		}
		lang, ok := m.languageStore[chain.Language]
		if !ok || !lang.Active {
			continue
		}
		if m.statusStore[*chain.CurrentID].Status != db.StatusVerified {
			continue
		}
		chains = append(chains, chain)
	}
	sort.Slice(chains, func(i, j int) bool {
		if chains[i].CreatedAt.Equal(chains[j].CreatedAt) {
			return chains[i].ID < chains[j].ID
		}
		return chains[i].CreatedAt.Before(chains[j].CreatedAt)
	})
	return chains, nil
}

func (m *MemoryDataStore) QueryPendingNodes(ctx context.Context, kind string) ([]db.PendingNodeDB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	pending := make([]db.PendingNodeDB, 0)
	for id, status := range m.statusStore {
		if status.Status != db.StatusPending {
			continue
		}
		node := m.nodeStore[id]
		chain := m.chainStore[node.ChainID]
		if kind != "" && chain.Kind != kind {
			continue
		}
		pending = append(pending, db.PendingNodeDB{
			NodeDB:   node,
			Kind:     chain.Kind,
			Language: chain.Language,
		})
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].ID < pending[j].ID
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

// ============== LANGUAGE METHODS ==============

func (m *MemoryDataStore) SaveLanguage(ctx context.Context, language db.LanguageDB) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.languageStore[language.Code] = language
	return nil
}

func (m *MemoryDataStore) GetLanguage(ctx context.Context, code string) (*db.LanguageDB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	language, ok := m.languageStore[code]
	if !ok {
		return nil, exception.NewNotFoundError(LanguageResource, code)
	}
	return &language, nil
}

func (m *MemoryDataStore) GetLanguages(ctx context.Context) ([]db.LanguageDB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	languages := make([]db.LanguageDB, 0, len(m.languageStore))
	for _, language := range m.languageStore {
		languages = append(languages, language)
	}
	sort.Slice(languages, func(i, j int) bool {
		return languages[i].Code < languages[j].Code
	})
	return languages, nil
}

// ============== LIFECYCLE ==============

func (m *MemoryDataStore) Ping() error {
	return nil
}

func (m *MemoryDataStore) Close() error {
	return nil
}

var _ DataStore = (*MemoryDataStore)(nil)
