// Package nodestore provides the SQLite-backed node index consulted when
// rich-text and reference fields are resolved.
//
// The index holds every synced node keyed by identifier; resolution
// filters it by owner, system type and identifier membership. A small LRU
// cache fronts the membership queries, since the same rich-text document
// is resolved once per links sub-object.
package nodestore

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/zakariaelas/contentgraph/core/richtext"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const cacheSize = 1024

// System types stored in the index.
const (
	SysTypeEntry = "Entry"
	SysTypeAsset = "Asset"
)

// Node is one synced record in the index.
type Node struct {
	ID          string          `json:"id"`
	Owner       string          `json:"owner"`
	SysType     string          `json:"sysType"`
	ContentType string          `json:"contentType,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// RichTextLinks are the index nodes referenced by one rich-text document,
// grouped the way the links sub-objects expose them.
type RichTextLinks struct {
	AssetBlocks     []Node
	AssetHyperlinks []Node
	EntryBlocks     []Node
	EntryInlines    []Node
	EntryHyperlinks []Node
}

// Store is a SQLite-backed node index.
type Store struct {
	db     *sql.DB
	cache  *lru.Cache[string, []Node]
	logger zerolog.Logger
}

// Open opens (creating if needed) the index at path and runs pending
// migrations.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open node index: %w", err)
	}

	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	cache, err := lru.New[string, []Node](cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create query cache: %w", err)
	}

	logger.Debug().Str("path", path).Msg("node index ready")
	return &Store{db: db, cache: cache, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put upserts a node. Writes invalidate the query cache.
func (s *Store) Put(node Node) error {
	if node.ID == "" {
		return fmt.Errorf("node has no id")
	}
	_, err := s.db.Exec(`
		INSERT INTO nodes (id, owner, sys_type, content_type, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner = excluded.owner,
			sys_type = excluded.sys_type,
			content_type = excluded.content_type,
			data = excluded.data
	`, node.ID, node.Owner, node.SysType, node.ContentType, string(node.Data))
	if err != nil {
		return fmt.Errorf("put node %s: %w", node.ID, err)
	}
	s.cache.Purge()
	return nil
}

// Get returns the node with the given id.
func (s *Store) Get(id string) (Node, bool, error) {
	row := s.db.QueryRow(
		"SELECT id, owner, sys_type, content_type, data FROM nodes WHERE id = ?", id)

	node, err := scanNode(row.Scan)
	if err == sql.ErrNoRows {
		return Node{}, false, nil
	}
	if err != nil {
		return Node{}, false, fmt.Errorf("get node %s: %w", id, err)
	}
	return node, true, nil
}

// FilterByIDs returns the nodes owned by owner, of the given system type,
// whose ids are in the given set. Results are ordered by id.
func (s *Store) FilterByIDs(owner, sysType string, ids []string) ([]Node, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	key := cacheKey(owner, sysType, ids)
	if nodes, ok := s.cache.Get(key); ok {
		return nodes, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+2)
	args = append(args, owner, sysType)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT id, owner, sys_type, content_type, data FROM nodes
		WHERE owner = ? AND sys_type = ? AND id IN (%s)
		ORDER BY id
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("filter nodes: %w", err)
	}
	defer rows.Close()

	var nodes []Node
	for rows.Next() {
		node, err := scanNode(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("filter nodes: %w", err)
	}

	s.cache.Add(key, nodes)
	return nodes, nil
}

// ResolveRichText walks a rich-text document and returns the index nodes
// its embedded references point at, grouped per links sub-object. Dangling
// references resolve to nothing rather than an error.
func (s *Store) ResolveRichText(owner string, doc *richtext.Document) (RichTextLinks, error) {
	refs := richtext.Extract(doc)

	var links RichTextLinks
	groups := []struct {
		sysType string
		ids     []string
		out     *[]Node
	}{
		{SysTypeAsset, refs.AssetBlocks, &links.AssetBlocks},
		{SysTypeAsset, refs.AssetHyperlinks, &links.AssetHyperlinks},
		{SysTypeEntry, refs.EntryBlocks, &links.EntryBlocks},
		{SysTypeEntry, refs.EntryInlines, &links.EntryInlines},
		{SysTypeEntry, refs.EntryHyperlinks, &links.EntryHyperlinks},
	}

	for _, g := range groups {
		nodes, err := s.FilterByIDs(owner, g.sysType, g.ids)
		if err != nil {
			return RichTextLinks{}, err
		}
		*g.out = nodes
	}

	return links, nil
}

// Count returns the number of indexed nodes.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&n); err != nil {
		return 0, fmt.Errorf("count nodes: %w", err)
	}
	return n, nil
}

func scanNode(scan func(...any) error) (Node, error) {
	var node Node
	var data string
	if err := scan(&node.ID, &node.Owner, &node.SysType, &node.ContentType, &data); err != nil {
		return Node{}, err
	}
	if data != "" {
		node.Data = json.RawMessage(data)
	}
	return node, nil
}

func cacheKey(owner, sysType string, ids []string) string {
	return owner + "|" + sysType + "|" + strings.Join(ids, ",")
}

// migrate runs every embedded migration not yet applied, in file order.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("query migrations: %w", err)
	}
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("query migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if applied[name] {
			continue
		}
		data, err := fs.ReadFile(migrationsFS, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}

	return nil
}
