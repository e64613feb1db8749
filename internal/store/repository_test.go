package store

import (
	"context"
	"testing"

	"inventory_system/internal/db"
	"inventory_system/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated in-memory database with the same error translation as production
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // Every connection to :memory: is a separate database
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))
	return conn
}

func TestKategoriRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewKategoriRepository(newTestDB(t))

	id, err := repo.Create(ctx, &domain.Kategori{Nama: "Elektronik"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)
	_, err = repo.Create(ctx, &domain.Kategori{Nama: "Furniture"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Kategori{Nama: "Elektronik"})
	assert.True(t, IsDuplicate(err), "unique index violation: %v", err)

	exists, err := repo.Exists(ctx, &domain.Kategori{Nama: "Elektronik"}, 0)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.Exists(ctx, &domain.Kategori{Nama: "Elektronik"}, 1)
	require.NoError(t, err)
	assert.False(t, exists, "a row may keep its own name")
	exists, err = repo.Exists(ctx, &domain.Kategori{Nama: "Elektronik"}, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Update(ctx, 1, &domain.Kategori{Nama: "Gadget"}))
	got, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", got.Nama)

	err = repo.Update(ctx, 2, &domain.Kategori{Nama: "Gadget"})
	assert.True(t, IsDuplicate(err), "update onto a taken name: %v", err)
	assert.True(t, IsNotFound(repo.Update(ctx, 99, &domain.Kategori{Nama: "Baru"})))

	_, err = repo.FindByID(ctx, 99)
	assert.True(t, IsNotFound(err))

	require.NoError(t, repo.Delete(ctx, 2))
	assert.True(t, IsNotFound(repo.Delete(ctx, 2)))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListAndSearchPages(t *testing.T) {
	ctx := context.Background()
	repo := NewKategoriRepository(newTestDB(t))
	for _, nama := range []string{"Elektronik", "Furniture", "Elektro Rumah", "Alat Tulis", "Elektrik"} {
		_, err := repo.Create(ctx, &domain.Kategori{Nama: nama})
		require.NoError(t, err)
	}

	rows, err := repo.List(ctx, NewPage(2, 2))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Elektro Rumah", rows[0].Nama)
	assert.Equal(t, "Alat Tulis", rows[1].Nama)

	rows, err = repo.List(ctx, NewPage(4, 2))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = repo.Search(ctx, "Elektr", NewPage(1, 2))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Elektronik", rows[0].Nama)
	assert.Equal(t, "Elektro Rumah", rows[1].Nama)

	n, err := repo.CountMatching(ctx, "Elektr")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = repo.CountMatching(ctx, "Kursi")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBarangView(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	kategori := NewKategoriRepository(conn)
	barang := NewBarangRepository(conn)
	detail := NewDetailBarangRepository(conn)

	_, err := kategori.Create(ctx, &domain.Kategori{Nama: "Elektronik"})
	require.NoError(t, err)
	laptop, err := barang.Create(ctx, &domain.Barang{IDKategori: 1, Nama: "Laptop"})
	require.NoError(t, err)
	_, err = barang.Create(ctx, &domain.Barang{IDKategori: 1, Nama: "Printer"})
	require.NoError(t, err)
	for _, sn := range []string{"SN-1", "SN-2"} {
		_, err := detail.Create(ctx, &domain.DetailBarang{IDBarang: laptop, SerialNumber: sn, GedungLokasiBarang: "A", RuangLokasiBarang: "0"})
		require.NoError(t, err)
	}

	// Unique per kategori, not globally
	_, err = barang.Create(ctx, &domain.Barang{IDKategori: 1, Nama: "Laptop"})
	assert.True(t, IsDuplicate(err))
	_, err = barang.Create(ctx, &domain.Barang{IDKategori: 2, Nama: "Laptop"})
	require.NoError(t, err)

	got, err := barang.FindByID(ctx, laptop)
	require.NoError(t, err)
	require.NotNil(t, got.NamaKategori)
	assert.Equal(t, "Elektronik", *got.NamaKategori)
	assert.Equal(t, int64(2), got.DetailCount)

	rows, err := barang.List(ctx, NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(0), rows[1].DetailCount)
	assert.Nil(t, rows[2].NamaKategori)

	rows, err = barang.Search(ctx, "Lap", NewPage(1, 10))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	n, err := barang.CountMatching(ctx, "Lap")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Deleting the kategori leaves its barang in place
	require.NoError(t, kategori.Delete(ctx, 1))
	got, err = barang.FindByID(ctx, laptop)
	require.NoError(t, err)
	assert.Nil(t, got.NamaKategori)
	assert.Equal(t, uint(1), got.IDKategori)
}

func TestDetailBarangUpdateWritesZeroValues(t *testing.T) {
	ctx := context.Background()
	repo := NewDetailBarangRepository(newTestDB(t))

	id, err := repo.Create(ctx, &domain.DetailBarang{IDBarang: 1, SerialNumber: "SN-1", GedungLokasiBarang: "A", RuangLokasiBarang: "101", CanBorrow: true})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, id, &domain.DetailBarang{IDBarang: 1, SerialNumber: "SN-1", GedungLokasiBarang: "B", RuangLokasiBarang: "0", CanBorrow: false}))

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.CanBorrow)
	assert.Equal(t, "0", got.RuangLokasiBarang)
	assert.Equal(t, "B", got.GedungLokasiBarang)

	// The same serial number under another barang is a different unit
	_, err = repo.Create(ctx, &domain.DetailBarang{IDBarang: 2, SerialNumber: "SN-1", GedungLokasiBarang: "A", RuangLokasiBarang: "1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.DetailBarang{IDBarang: 1, SerialNumber: "SN-1", GedungLokasiBarang: "A", RuangLokasiBarang: "1"})
	assert.True(t, IsDuplicate(err))

	rows, err := repo.Search(ctx, "SN-", NewPage(1, 10))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	email := "wira@gmail.com"

	user := &domain.User{Nama: "Wira", Password: "hash", Role: domain.RoleOperator, Pekerjaan: "Staff", NomorPengenal: "123", Email: &email}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := repo.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "Wira", got.Nama)
	assert.Equal(t, "hash", got.Password)

	_, err = repo.FindByEmail(ctx, "nobody@gmail.com")
	assert.True(t, IsNotFound(err))

	taken, err := repo.ExistsByNomorPengenal(ctx, "123")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.ExistsByEmail(ctx, "other@gmail.com")
	require.NoError(t, err)
	assert.False(t, taken)

	err = repo.Create(ctx, &domain.User{Nama: "Budi", Password: "hash", Role: "peminjam", Pekerjaan: "Staff", NomorPengenal: "123"})
	assert.True(t, IsDuplicate(err))
	err = repo.Create(ctx, &domain.User{Nama: "Budi", Password: "hash", Role: "peminjam", Pekerjaan: "Staff", NomorPengenal: "456", Email: &email})
	assert.True(t, IsDuplicate(err))

	// Users without an email do not collide on the unique index
	require.NoError(t, repo.Create(ctx, &domain.User{Nama: "Citra", Password: "hash", Role: "peminjam", Pekerjaan: "Staff", NomorPengenal: "789"}))
	require.NoError(t, repo.Create(ctx, &domain.User{Nama: "Dewi", Password: "hash", Role: "peminjam", Pekerjaan: "Staff", NomorPengenal: "790"}))
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	_, err := NewKategoriRepository(conn).Create(ctx, &domain.Kategori{Nama: "Elektronik"})
	require.NoError(t, err)
	barang := NewBarangRepository(conn)
	for _, nama := range []string{"Laptop", "Printer"} {
		_, err := barang.Create(ctx, &domain.Barang{IDKategori: 1, Nama: nama})
		require.NoError(t, err)
	}

	got, err := NewSummaryRepository(conn).Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.Summary{KategoriCount: 1, BarangCount: 2}, got)
}
