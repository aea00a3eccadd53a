package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/aidigest/pkg/domain"
)

// MaxPageSize limits page size of item queries
const MaxPageSize = 100

// ItemRepository handles item-related database operations
type ItemRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// itemSQL represents an item for SQL operations
type itemSQL struct {
	ID          string                `db:"id"`
	Module      string                `db:"module"`
	Title       string                `db:"title"`
	TitleZh     string                `db:"title_zh"`
	Summary     string                `db:"summary"`
	Link        string                `db:"link"`
	Source      string                `db:"source"`
	Author      string                `db:"author"`
	Thumbnail   string                `db:"thumbnail"`
	PubDate     *time.Time            `db:"pub_date"`
	FameScore   int                   `db:"fame_score"`
	Tags        jsonSQL[[]domain.Tag] `db:"tags"`
	IsHero      int                   `db:"is_hero"`
	CoreInsight string                `db:"core_insight"`
	KeyPoints   jsonSQL[[]string]     `db:"key_points"`
	Extra       jsonSQL[domain.Extra] `db:"extra"`
	FetchRunID  string                `db:"fetch_run_id"`
	CreatedAt   time.Time             `db:"created_at"`
	UpdatedAt   time.Time             `db:"updated_at"`
}

const itemColumns = `id, module, title, title_zh, summary, link, source, author, thumbnail, pub_date,
	fame_score, tags, is_hero, core_insight, key_points, extra, fetch_run_id, created_at, updated_at`

// ItemFilter defines item query parameters, zero values mean no filter
type ItemFilter struct {
	Module   domain.Module
	Query    string // substring of title, chinese title, summary or source
	HeroOnly bool
	Since    time.Time // pub date lower bound, inclusive
	Until    time.Time // pub date upper bound, exclusive
	OrderBy  string    // "fame" (default) or "pub_date"
	Page     int       // 1-based
	PageSize int       // default and max is MaxPageSize
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sqlx.DB, sb sq.StatementBuilderType) *ItemRepository {
	return &ItemRepository{db: db, sb: sb}
}

// ReplaceModuleItems swaps the whole partition of module with items in one transaction.
// Deletion runs before inserts so ids carried over from the previous batch don't collide,
// any failure rolls back and leaves the partition unchanged.
func (r *ItemRepository) ReplaceModuleItems(ctx context.Context, module domain.Module, items []domain.Item) error {
	if err := validatePartition(module, items); err != nil {
		return fmt.Errorf("invalid %s partition: %w", module, err)
	}

	now := time.Now().UTC()
	rows := make([]itemSQL, len(items))
	for i := range items {
		rows[i] = toItemSQL(&items[i], now)
	}

	const insert = `INSERT INTO items (` + itemColumns + `) VALUES (:id, :module, :title, :title_zh, :summary,
		:link, :source, :author, :thumbnail, :pub_date, :fame_score, :tags, :is_hero, :core_insight,
		:key_points, :extra, :fetch_run_id, :created_at, :updated_at)`

	return retry(ctx, "replace module items", func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM items WHERE module = ?"), string(module)); err != nil {
			return fmt.Errorf("delete %s items: %w", module, err)
		}
		for i := range rows {
			if _, err := tx.NamedExecContext(ctx, insert, &rows[i]); err != nil {
				return fmt.Errorf("insert item %s: %w", rows[i].ID, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

// validatePartition checks ids, links and hero uniqueness of a partition
func validatePartition(module domain.Module, items []domain.Item) error {
	heroes := 0
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.Module != module {
			return fmt.Errorf("item %s belongs to module %q", it.ID, it.Module)
		}
		if !strings.HasPrefix(it.ID, string(module)+"_") {
			return fmt.Errorf("item id %q has no module prefix", it.ID)
		}
		if it.Link == "" {
			return fmt.Errorf("item %s has empty link", it.ID)
		}
		if seen[it.ID] {
			return fmt.Errorf("duplicate item id %s", it.ID)
		}
		seen[it.ID] = true
		if it.IsHero {
			heroes++
		}
	}
	if heroes > 1 {
		return fmt.Errorf("%d hero items", heroes)
	}
	return nil
}

// GetItem retrieves an item by id
func (r *ItemRepository) GetItem(ctx context.Context, id string) (domain.Item, error) {
	var row itemSQL
	query := r.db.Rebind("SELECT " + itemColumns + " FROM items WHERE id = ?")
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Item{}, fmt.Errorf("get item %s: %w", id, ErrNotFound)
		}
		return domain.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// QueryItems returns a page of items matching the filter and the total number of matches
func (r *ItemRepository) QueryItems(ctx context.Context, f ItemFilter) (items []domain.Item, total int, err error) {
	where := sq.And{}
	if f.Module != "" {
		where = append(where, sq.Eq{"module": string(f.Module)})
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + q + "%"
		like := func(col string) sq.Sqlizer {
			if r.db.DriverName() == "postgres" {
				return sq.ILike{col: pattern}
			}
			return sq.Like{col: pattern}
		}
		where = append(where, sq.Or{like("title"), like("title_zh"), like("summary"), like("source")})
	}
	if f.HeroOnly {
		where = append(where, sq.Eq{"is_hero": 1})
	}
	if !f.Since.IsZero() {
		where = append(where, sq.GtOrEq{"pub_date": f.Since.UTC()})
	}
	if !f.Until.IsZero() {
		where = append(where, sq.Lt{"pub_date": f.Until.UTC()})
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From("items").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	if err = r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	pageSize := f.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	page := max(f.Page, 1)

	// undated items go last for both drivers
	order := []string{"fame_score DESC", "CASE WHEN pub_date IS NULL THEN 1 ELSE 0 END", "pub_date DESC", "id"}
	if f.OrderBy == "pub_date" {
		order = []string{"CASE WHEN pub_date IS NULL THEN 1 ELSE 0 END", "pub_date DESC", "fame_score DESC", "id"}
	}

	query, args, err := r.sb.Select(strings.Fields(strings.ReplaceAll(itemColumns, ",", " "))...).
		From("items").Where(where).OrderBy(order...).
		Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize)). //nolint:gosec // both positive
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build items query: %w", err)
	}

	var rows []itemSQL
	if err = r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}
	items = make([]domain.Item, len(rows))
	for i := range rows {
		items[i] = rows[i].toDomain()
	}
	return items, total, nil
}

// CountByModule returns number of stored items per module
func (r *ItemRepository) CountByModule(ctx context.Context) (map[domain.Module]int, error) {
	var rows []struct {
		Module string `db:"module"`
		Count  int    `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT module, COUNT(*) AS cnt FROM items GROUP BY module"); err != nil {
		return nil, fmt.Errorf("count items by module: %w", err)
	}
	res := make(map[domain.Module]int, len(rows))
	for _, row := range rows {
		res[domain.Module(row.Module)] = row.Count
	}
	return res, nil
}

func toItemSQL(it *domain.Item, now time.Time) itemSQL {
	it.Normalize()
	row := itemSQL{
		ID:          it.ID,
		Module:      string(it.Module),
		Title:       it.Title,
		TitleZh:     it.TitleZh,
		Summary:     it.Summary,
		Link:        it.Link,
		Source:      it.Source,
		Author:      it.Author,
		Thumbnail:   it.Thumbnail,
		FameScore:   it.FameScore,
		Tags:        jsonSQL[[]domain.Tag]{V: it.Tags},
		CoreInsight: it.CoreInsight,
		KeyPoints:   jsonSQL[[]string]{V: it.KeyPoints},
		Extra:       jsonSQL[domain.Extra]{V: it.Extra},
		FetchRunID:  it.FetchRunID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if it.IsHero {
		row.IsHero = 1
	}
	if !it.PubDate.IsZero() {
		pub := it.PubDate.UTC()
		row.PubDate = &pub
	}
	return row
}

func (s *itemSQL) toDomain() domain.Item {
	it := domain.Item{
		ID:          s.ID,
		Module:      domain.Module(s.Module),
		Title:       s.Title,
		TitleZh:     s.TitleZh,
		Summary:     s.Summary,
		Link:        s.Link,
		Source:      s.Source,
		Author:      s.Author,
		Thumbnail:   s.Thumbnail,
		FameScore:   s.FameScore,
		Tags:        s.Tags.V,
		IsHero:      s.IsHero != 0,
		CoreInsight: s.CoreInsight,
		KeyPoints:   s.KeyPoints.V,
		Extra:       s.Extra.V,
		FetchRunID:  s.FetchRunID,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
	if s.PubDate != nil {
		it.PubDate = s.PubDate.UTC()
	}
	it.SourceID = strings.TrimPrefix(it.ID, string(it.Module)+"_")
	it.Normalize()
	return it
}
