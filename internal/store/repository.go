package store

import (
	"context" // Request scoped cancellation
	"errors"  // Error inspection

	"gorm.io/gorm" // GORM ORM library
)

// Repository is the store contract shared by every inventory resource.
// T is the row written by create/update, R is the row returned by reads.
type Repository[T any, R any] interface {
	Create(ctx context.Context, row *T) (uint, error)
	Update(ctx context.Context, id uint, row *T) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*R, error)
	List(ctx context.Context, page Page) ([]R, error)
	Search(ctx context.Context, keyword string, page Page) ([]R, error)
	Count(ctx context.Context) (int64, error)
	CountMatching(ctx context.Context, keyword string) (int64, error)
	// Exists reports whether another row already holds row's unique key.
	// A non-zero excludeID leaves that row out of the check.
	Exists(ctx context.Context, row *T, excludeID uint) (bool, error)
}

// Table describes how a resource maps onto its SQL table
type Table[T any] struct {
	Alias        string                      // Alias used by View, empty when reads hit the table directly
	SearchColumn string                      // Column matched by Search
	Columns      []string                    // Columns written by Update
	UniqueKey    func(row *T) map[string]any // Columns forming the uniqueness constraint
	PrimaryKey   func(row *T) uint           // Reads the generated id after insert
	View         func(tx *gorm.DB) *gorm.DB  // Optional enriched read query
}

// GormRepository implements Repository on top of GORM
type GormRepository[T any, R any] struct {
	db    *gorm.DB
	table Table[T]
}

// NewGormRepository creates a repository for the given table description
func NewGormRepository[T any, R any](db *gorm.DB, table Table[T]) *GormRepository[T, R] {
	return &GormRepository[T, R]{db: db, table: table}
}

// column qualifies a column name with the view alias
func (r *GormRepository[T, R]) column(name string) string {
	if r.table.Alias == "" {
		return name
	}
	return r.table.Alias + "." + name
}

// write returns a query on the base table
func (r *GormRepository[T, R]) write(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

// read returns the query rows are fetched from
func (r *GormRepository[T, R]) read(ctx context.Context) *gorm.DB {
	tx := r.db.WithContext(ctx)
	if r.table.View != nil {
		return r.table.View(tx)
	}
	return tx.Model(new(T))
}

// Create inserts row and returns its generated id
func (r *GormRepository[T, R]) Create(ctx context.Context, row *T) (uint, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return 0, translateError(err)
	}
	return r.table.PrimaryKey(row), nil
}

// Update overwrites the writable columns of the row with the given id
func (r *GormRepository[T, R]) Update(ctx context.Context, id uint, row *T) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		// Select forces zero values such as can_borrow=false to be written
		return tx.Model(new(T)).Where("id = ?", id).Select(r.table.Columns).Updates(row).Error
	})
	return translateError(err)
}

// Delete removes the row with the given id
func (r *GormRepository[T, R]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID returns the read row with the given id
func (r *GormRepository[T, R]) FindByID(ctx context.Context, id uint) (*R, error) {
	var row R
	if err := r.read(ctx).Where(r.column("id")+" = ?", id).Take(&row).Error; err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

// List returns one page of rows ordered by id
func (r *GormRepository[T, R]) List(ctx context.Context, page Page) ([]R, error) {
	rows := make([]R, 0, page.Limit)
	err := r.read(ctx).
		Order(r.column("id")).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, translateError(err)
}

// Search returns one page of rows whose search column contains keyword
func (r *GormRepository[T, R]) Search(ctx context.Context, keyword string, page Page) ([]R, error) {
	rows := make([]R, 0, page.Limit)
	err := r.read(ctx).
		Where(r.column(r.table.SearchColumn)+" LIKE ?", likePattern(keyword)).
		Order(r.column("id")).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, translateError(err)
}

// Count returns the number of rows in the table
func (r *GormRepository[T, R]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.write(ctx).Count(&n).Error
	return n, translateError(err)
}

// CountMatching returns the number of rows Search would match across all pages
func (r *GormRepository[T, R]) CountMatching(ctx context.Context, keyword string) (int64, error) {
	var n int64
	err := r.write(ctx).Where(r.table.SearchColumn+" LIKE ?", likePattern(keyword)).Count(&n).Error
	return n, translateError(err)
}

// Exists reports whether the unique key of row is already taken
func (r *GormRepository[T, R]) Exists(ctx context.Context, row *T, excludeID uint) (bool, error) {
	q := r.write(ctx).Where(r.table.UniqueKey(row))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID) // The row being updated may keep its own key
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, translateError(err)
	}
	return n > 0, nil
}

func likePattern(keyword string) string {
	return "%" + keyword + "%"
}

// IsNotFound reports whether err means the requested row does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is a uniqueness violation
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
