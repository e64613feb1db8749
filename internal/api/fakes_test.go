package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"inventory_system/internal/domain"
	"inventory_system/internal/store"
	"inventory_system/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeRepo is an in-memory store.Repository that enforces the unique key like the real index does
type fakeRepo[T any, R any] struct {
	mu     sync.Mutex
	rows   map[uint]T
	nextID uint
	key    func(*T) string
	search func(*T) string
	setID  func(*T, uint)
	view   func(T) R

	err        error // returned by every call when set
	skipExists bool  // the pre-check misses, as when a concurrent insert wins
}

func newFakeRepo[T any, R any](key, search func(*T) string, setID func(*T, uint), view func(T) R) *fakeRepo[T, R] {
	return &fakeRepo[T, R]{rows: map[uint]T{}, key: key, search: search, setID: setID, view: view}
}

func (f *fakeRepo[T, R]) sortedIDs() []uint {
	ids := make([]uint, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (f *fakeRepo[T, R]) taken(row *T, excludeID uint) bool {
	for id, existing := range f.rows {
		if id != excludeID && f.key(&existing) == f.key(row) {
			return true
		}
	}
	return false
}

func (f *fakeRepo[T, R]) page(rows []R, p store.Page) []R {
	start := min(p.Offset(), len(rows))
	end := min(start+p.Limit, len(rows))
	return rows[start:end]
}

func (f *fakeRepo[T, R]) Create(_ context.Context, row *T) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	if f.taken(row, 0) {
		return 0, store.ErrDuplicate
	}
	f.nextID++
	f.setID(row, f.nextID)
	f.rows[f.nextID] = *row
	return f.nextID, nil
}

func (f *fakeRepo[T, R]) Update(_ context.Context, id uint, row *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return store.ErrNotFound
	}
	if f.taken(row, id) {
		return store.ErrDuplicate
	}
	f.setID(row, id)
	f.rows[id] = *row
	return nil
}

func (f *fakeRepo[T, R]) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo[T, R]) FindByID(_ context.Context, id uint) (*R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	v := f.view(row)
	return &v, nil
}

func (f *fakeRepo[T, R]) List(_ context.Context, p store.Page) ([]R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var all []R
	for _, id := range f.sortedIDs() {
		all = append(all, f.view(f.rows[id]))
	}
	return f.page(all, p), nil
}

func (f *fakeRepo[T, R]) Search(_ context.Context, keyword string, p store.Page) ([]R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var all []R
	for _, id := range f.sortedIDs() {
		row := f.rows[id]
		if strings.Contains(f.search(&row), keyword) {
			all = append(all, f.view(row))
		}
	}
	return f.page(all, p), nil
}

func (f *fakeRepo[T, R]) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), f.err
}

func (f *fakeRepo[T, R]) CountMatching(_ context.Context, keyword string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, row := range f.rows {
		if strings.Contains(f.search(&row), keyword) {
			n++
		}
	}
	return n, f.err
}

func (f *fakeRepo[T, R]) Exists(_ context.Context, row *T, excludeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.skipExists {
		return false, nil
	}
	return f.taken(row, excludeID), nil
}

func (f *fakeRepo[T, R]) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// fakeUsers is an in-memory store.UserRepository. Emails match case-insensitively.
type fakeUsers struct {
	mu    sync.Mutex
	users []domain.User
	err   error
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email != nil && strings.EqualFold(*u.Email, email) {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) ExistsByNomorPengenal(_ context.Context, nomorPengenal string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.NomorPengenal == nomorPengenal {
			return true, f.err
		}
	}
	return false, f.err
}

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email != nil && strings.EqualFold(*u.Email, email) {
			return true, f.err
		}
	}
	return false, f.err
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, *user)
	return nil
}

// fakeSummary is a canned SummaryReader that counts its calls
type fakeSummary struct {
	summary domain.Summary
	calls   int
	err     error
}

func (f *fakeSummary) Summary(context.Context) (domain.Summary, error) {
	f.calls++
	return f.summary, f.err
}

// testServer is the full router backed by fakes
type testServer struct {
	router   *gin.Engine
	users    *fakeUsers
	kategori *fakeRepo[domain.Kategori, domain.Kategori]
	barang   *fakeRepo[domain.Barang, domain.BarangView]
	detail   *fakeRepo[domain.DetailBarang, domain.DetailBarang]
	summary  *fakeSummary
}

func newTestServer(t *testing.T, rdb *redis.Client) *testServer {
	t.Helper()
	s := &testServer{users: &fakeUsers{}, summary: &fakeSummary{}}
	s.kategori = newFakeRepo(
		func(k *domain.Kategori) string { return k.Nama },
		func(k *domain.Kategori) string { return k.Nama },
		func(k *domain.Kategori, id uint) { k.ID = id },
		func(k domain.Kategori) domain.Kategori { return k },
	)
	s.detail = newFakeRepo(
		func(d *domain.DetailBarang) string { return fmt.Sprintf("%s|%d", d.SerialNumber, d.IDBarang) },
		func(d *domain.DetailBarang) string { return d.SerialNumber },
		func(d *domain.DetailBarang, id uint) { d.ID = id },
		func(d domain.DetailBarang) domain.DetailBarang { return d },
	)
	s.barang = newFakeRepo(
		func(b *domain.Barang) string { return fmt.Sprintf("%s|%d", b.Nama, b.IDKategori) },
		func(b *domain.Barang) string { return b.Nama },
		func(b *domain.Barang, id uint) { b.ID = id },
		func(b domain.Barang) domain.BarangView {
			v := domain.BarangView{ID: b.ID, IDKategori: b.IDKategori, Nama: b.Nama}
			if k, ok := s.kategori.rows[b.IDKategori]; ok {
				v.NamaKategori = &k.Nama
			}
			for _, d := range s.detail.rows {
				if d.IDBarang == b.ID {
					v.DetailCount++
				}
			}
			return v
		},
	)
	s.router = NewRouter(Dependencies{
		Users:        s.users,
		Kategori:     s.kategori,
		Barang:       s.barang,
		DetailBarang: s.detail,
		Summary:      s.summary,
		Cache:        rdb,
		JWTSecret:    testSecret,
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.GenerateJWT(1, "Wira", "wira@gmail.com", role, testSecret)
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
