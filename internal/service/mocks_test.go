package service

import (
	"bytes"
	"context"
	"database/sql"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Test mocks (minimal, inline)
// ---------------------------------------------------------------------------

type mockTx struct{ calls int }

func (m *mockTx) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	m.calls++
	return fn(nil)
}

type mockTripRepo struct {
	createFunc      func(ctx context.Context, tx *sql.Tx, trip *models.Trip) (int64, error)
	getByIDFunc     func(ctx context.Context, id int64) (*models.Trip, error)
	listByUserFunc  func(ctx context.Context, userID int64, publicOnly bool) ([]*models.Trip, error)
	listPublicFunc  func(ctx context.Context, limit, offset int) ([]*models.Trip, error)
	updateFunc      func(ctx context.Context, tx *sql.Tx, trip *models.Trip) error
	updateCoverFunc func(ctx context.Context, id int64, url string) error
	removeFunc      func(ctx context.Context, id int64) error
}

func (m *mockTripRepo) Create(ctx context.Context, tx *sql.Tx, trip *models.Trip) (int64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, tx, trip)
	}
	return 1, nil
}

func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTripRepo) ListByUserID(ctx context.Context, userID int64, publicOnly bool) ([]*models.Trip, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, publicOnly)
	}
	return []*models.Trip{}, nil
}

func (m *mockTripRepo) ListPublic(ctx context.Context, limit, offset int) ([]*models.Trip, error) {
	if m.listPublicFunc != nil {
		return m.listPublicFunc(ctx, limit, offset)
	}
	return []*models.Trip{}, nil
}

func (m *mockTripRepo) Update(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, tx, trip)
	}
	return nil
}

func (m *mockTripRepo) UpdateCover(ctx context.Context, id int64, url string) error {
	if m.updateCoverFunc != nil {
		return m.updateCoverFunc(ctx, id, url)
	}
	return nil
}

func (m *mockTripRepo) Remove(ctx context.Context, id int64) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, id)
	}
	return nil
}

// memDays keeps trip days in memory so day re-sync can be checked end to end.
type memDays struct {
	mu     sync.Mutex
	nextID int64
	days   []*models.TripDay
}

func (m *memDays) Create(ctx context.Context, tx *sql.Tx, day *models.TripDay) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	d := *day
	d.ID = m.nextID
	m.days = append(m.days, &d)
	return d.ID, nil
}

func (m *memDays) ListByTripID(ctx context.Context, tx *sql.Tx, tripID int64) ([]*models.TripDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.TripDay{}
	for _, d := range m.days {
		if d.TripID == tripID {
			c := *d
			c.Items = []*models.TripItem{}
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memDays) GetWithOwner(ctx context.Context, dayID int64) (*models.TripDay, int64, error) {
	return nil, 0, nil
}

func (m *memDays) UpdateDate(ctx context.Context, tx *sql.Tx, dayID int64, date models.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.days {
		if d.ID == dayID {
			d.Date = date
		}
	}
	return nil
}

func (m *memDays) DeleteAfter(ctx context.Context, tx *sql.Tx, tripID int64, dayNumber int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.days[:0]
	var n int64
	for _, d := range m.days {
		if d.TripID == tripID && d.DayNumber > dayNumber {
			n++
			continue
		}
		kept = append(kept, d)
	}
	m.days = kept
	return n, nil
}

type mockDayRepo struct {
	memDays
	getWithOwnerFunc func(ctx context.Context, dayID int64) (*models.TripDay, int64, error)
}

func (m *mockDayRepo) GetWithOwner(ctx context.Context, dayID int64) (*models.TripDay, int64, error) {
	if m.getWithOwnerFunc != nil {
		return m.getWithOwnerFunc(ctx, dayID)
	}
	return nil, 0, nil
}

type mockItemRepo struct {
	created          []*models.TripItem
	sortUpdates      [][2]int64
	createFunc       func(ctx context.Context, tx *sql.Tx, item *models.TripItem) (int64, error)
	nextSortFunc     func(ctx context.Context, tx *sql.Tx, dayID int64) (int, error)
	getWithOwnerFunc func(ctx context.Context, itemID int64) (*models.TripItem, int64, error)
	listByTripFunc   func(ctx context.Context, tx *sql.Tx, tripID int64) ([]*models.TripItem, error)
	listIDsFunc      func(ctx context.Context, tx *sql.Tx, dayID int64) ([]int64, error)
	findBySortFunc   func(ctx context.Context, tx *sql.Tx, dayID int64, sortOrder int, excludeID int64) (int64, error)
	removeFunc       func(ctx context.Context, itemID int64) error
}

func (m *mockItemRepo) Create(ctx context.Context, tx *sql.Tx, item *models.TripItem) (int64, error) {
	c := *item
	m.created = append(m.created, &c)
	if m.createFunc != nil {
		return m.createFunc(ctx, tx, item)
	}
	return int64(100 + len(m.created)), nil
}

func (m *mockItemRepo) NextSortOrder(ctx context.Context, tx *sql.Tx, dayID int64) (int, error) {
	if m.nextSortFunc != nil {
		return m.nextSortFunc(ctx, tx, dayID)
	}
	return 1, nil
}

func (m *mockItemRepo) GetWithOwner(ctx context.Context, itemID int64) (*models.TripItem, int64, error) {
	if m.getWithOwnerFunc != nil {
		return m.getWithOwnerFunc(ctx, itemID)
	}
	return nil, 0, nil
}

func (m *mockItemRepo) ListByTripID(ctx context.Context, tx *sql.Tx, tripID int64) ([]*models.TripItem, error) {
	if m.listByTripFunc != nil {
		return m.listByTripFunc(ctx, tx, tripID)
	}
	return []*models.TripItem{}, nil
}

func (m *mockItemRepo) ListIDsByDayID(ctx context.Context, tx *sql.Tx, dayID int64) ([]int64, error) {
	if m.listIDsFunc != nil {
		return m.listIDsFunc(ctx, tx, dayID)
	}
	return nil, nil
}

func (m *mockItemRepo) FindBySortOrder(ctx context.Context, tx *sql.Tx, dayID int64, sortOrder int, excludeID int64) (int64, error) {
	if m.findBySortFunc != nil {
		return m.findBySortFunc(ctx, tx, dayID, sortOrder, excludeID)
	}
	return 0, nil
}

func (m *mockItemRepo) UpdateDetails(ctx context.Context, item *models.TripItem) error {
	return nil
}

func (m *mockItemRepo) UpdateSortOrder(ctx context.Context, tx *sql.Tx, itemID int64, sortOrder int) error {
	m.sortUpdates = append(m.sortUpdates, [2]int64{itemID, int64(sortOrder)})
	return nil
}

func (m *mockItemRepo) Remove(ctx context.Context, itemID int64) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, itemID)
	}
	return nil
}

type mockPlaceRepo struct {
	exists bool
}

func (m *mockPlaceRepo) Search(ctx context.Context, q transfer.PlaceQuery) ([]*models.Place, error) {
	return []*models.Place{}, nil
}

func (m *mockPlaceRepo) GetWithLocation(ctx context.Context, id int64) (*models.Place, error) {
	if !m.exists {
		return nil, nil
	}
	return &models.Place{ID: id}, nil
}

func (m *mockPlaceRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.exists, nil
}

// memFavorites mirrors the primary keys of the favorite tables.
type memFavorites struct {
	lists  map[int64]*models.FavoriteList
	places map[[2]int64]bool
	trips  map[[2]int64]bool
}

func newMemFavorites() *memFavorites {
	return &memFavorites{
		lists:  map[int64]*models.FavoriteList{},
		places: map[[2]int64]bool{},
		trips:  map[[2]int64]bool{},
	}
}

func (m *memFavorites) ListsByUserID(ctx context.Context, userID int64) ([]*models.FavoriteList, error) {
	out := []*models.FavoriteList{}
	for _, l := range m.lists {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memFavorites) GetList(ctx context.Context, listID int64) (*models.FavoriteList, error) {
	return m.lists[listID], nil
}

func (m *memFavorites) CreateList(ctx context.Context, list *models.FavoriteList) (int64, error) {
	id := int64(len(m.lists) + 1)
	c := *list
	c.ID = id
	m.lists[id] = &c
	return id, nil
}

func (m *memFavorites) RemoveList(ctx context.Context, listID int64) error {
	delete(m.lists, listID)
	return nil
}

func (m *memFavorites) ListPlaces(ctx context.Context, listID int64) ([]*models.Place, error) {
	return []*models.Place{}, nil
}

func (m *memFavorites) AddPlace(ctx context.Context, listID, placeID int64) (bool, error) {
	k := [2]int64{listID, placeID}
	if m.places[k] {
		return false, nil
	}
	m.places[k] = true
	return true, nil
}

func (m *memFavorites) RemovePlace(ctx context.Context, listID, placeID int64) (bool, error) {
	k := [2]int64{listID, placeID}
	if !m.places[k] {
		return false, nil
	}
	delete(m.places, k)
	return true, nil
}

func (m *memFavorites) AddTrip(ctx context.Context, userID, tripID int64) (bool, error) {
	k := [2]int64{userID, tripID}
	if m.trips[k] {
		return false, nil
	}
	m.trips[k] = true
	return true, nil
}

func (m *memFavorites) RemoveTrip(ctx context.Context, userID, tripID int64) (bool, error) {
	k := [2]int64{userID, tripID}
	if !m.trips[k] {
		return false, nil
	}
	delete(m.trips, k)
	return true, nil
}

func (m *memFavorites) ListTrips(ctx context.Context, userID int64) ([]*models.Trip, error) {
	return []*models.Trip{}, nil
}

func (m *memFavorites) PlaceIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for k := range m.places {
		if l := m.lists[k[0]]; l != nil && l.UserID == userID {
			ids = append(ids, k[1])
		}
	}
	return ids, nil
}

func (m *memFavorites) TripIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for k := range m.trips {
		if k[0] == userID {
			ids = append(ids, k[1])
		}
	}
	return ids, nil
}

type mockUserRepo struct {
	users       map[string]*models.User
	created     []*models.User
	updated     []*models.User
	passwordSet map[int64]string
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	m := &mockUserRepo{users: map[string]*models.User{}, passwordSet: map[int64]string{}}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	for _, u := range m.users {
		if u.ID == id {
			c := *u
			return &c, true, nil
		}
	}
	return nil, false, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, false, nil
	}
	c := *u
	return &c, true, nil
}

func (m *mockUserRepo) GetByGoogleID(ctx context.Context, googleID string) (*models.User, bool, error) {
	for _, u := range m.users {
		if googleID != "" && u.GoogleID == googleID {
			c := *u
			return &c, true, nil
		}
	}
	return nil, false, nil
}

func (m *mockUserRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	c := *user
	c.ID = int64(len(m.users) + 100)
	m.users[c.Email] = &c
	m.created = append(m.created, &c)
	return c.ID, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	c := *user
	m.users[c.Email] = &c
	m.updated = append(m.updated, &c)
	return nil
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, tx *sql.Tx, id int64, passwordHash string) error {
	m.passwordSet[id] = passwordHash
	return nil
}

func (m *mockUserRepo) GetProfile(ctx context.Context, id, viewerID int64) (*models.Profile, error) {
	return nil, nil
}

func (m *mockUserRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

// memOTPs stores codes like the otp_codes table does.
type memOTPs struct {
	codes []*models.OTPCode
}

func (m *memOTPs) Create(ctx context.Context, tx *sql.Tx, otp *models.OTPCode) (int64, error) {
	c := *otp
	c.ID = int64(len(m.codes) + 1)
	m.codes = append(m.codes, &c)
	return c.ID, nil
}

func (m *memOTPs) GetActive(ctx context.Context, userID int64, purpose string) (*models.OTPCode, error) {
	for i := len(m.codes) - 1; i >= 0; i-- {
		c := m.codes[i]
		if c.UserID == userID && c.Purpose == purpose && c.ConsumedAt == nil {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memOTPs) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	for _, c := range m.codes {
		if c.ID == id {
			c.Attempts++
			return c.Attempts, nil
		}
	}
	return 0, sql.ErrNoRows
}

func (m *memOTPs) Consume(ctx context.Context, tx *sql.Tx, id int64) error {
	for _, c := range m.codes {
		if c.ID == id {
			now := c.ExpiresAt
			c.ConsumedAt = &now
		}
	}
	return nil
}

func (m *memOTPs) InvalidateActive(ctx context.Context, tx *sql.Tx, userID int64, purpose string) error {
	for _, c := range m.codes {
		if c.UserID == userID && c.Purpose == purpose && c.ConsumedAt == nil {
			now := c.CreatedAt
			c.ConsumedAt = &now
		}
	}
	return nil
}

func (m *memOTPs) DeleteStale(ctx context.Context, expiredBefore time.Time) (int64, error) {
	return 0, nil
}

type sentOTP struct {
	Email, Code, Purpose string
}

type mockTasks struct {
	otps    []sentOTP
	deleted []string
}

func (m *mockTasks) SendOTP(ctx context.Context, email, code, purpose string) error {
	m.otps = append(m.otps, sentOTP{email, code, purpose})
	return nil
}

func (m *mockTasks) DeleteObject(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

type mockStorage struct {
	uploaded []string
	err      error
}

func (m *mockStorage) Upload(ctx context.Context, key string, file []byte, contentType string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.uploaded = append(m.uploaded, key)
	return "https://cdn.example.com/" + key, nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return nil
}

// memPosts stores posts by id; GetByID ignores the viewer.
type memPosts struct {
	posts   map[int64]*models.Post
	tags    map[int64][]string
	updated []*models.Post
	removed []int64
}

func newMemPosts(posts ...*models.Post) *memPosts {
	m := &memPosts{posts: map[int64]*models.Post{}, tags: map[int64][]string{}}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

func (m *memPosts) GetByID(ctx context.Context, id, viewerID int64) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (m *memPosts) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	return []*models.Post{}, nil
}

func (m *memPosts) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	c := *post
	c.ID = int64(len(m.posts) + 1)
	m.posts[c.ID] = &c
	return c.ID, nil
}

func (m *memPosts) Update(ctx context.Context, tx *sql.Tx, post *models.Post) error {
	c := *post
	m.posts[c.ID] = &c
	m.updated = append(m.updated, &c)
	return nil
}

func (m *memPosts) Remove(ctx context.Context, id int64) error {
	delete(m.posts, id)
	m.removed = append(m.removed, id)
	return nil
}

func (m *memPosts) ReplaceTags(ctx context.Context, tx *sql.Tx, postID int64, tags []string) error {
	m.tags[postID] = tags
	return nil
}

func (m *memPosts) TagsByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	out := map[int64][]string{}
	for _, id := range postIDs {
		if t, ok := m.tags[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (m *memPosts) TopTags(ctx context.Context, limit int) ([]*models.TagCount, error) {
	return []*models.TagCount{}, nil
}

type memPhotos struct {
	created []*models.PostPhoto
}

func (m *memPhotos) Create(ctx context.Context, tx *sql.Tx, photo *models.PostPhoto) (int64, error) {
	c := *photo
	c.ID = int64(len(m.created) + 1)
	m.created = append(m.created, &c)
	return c.ID, nil
}

func (m *memPhotos) NextDisplayOrder(ctx context.Context, postID int64) (int, error) {
	next := 1
	for _, p := range m.created {
		if p.PostID == postID && p.DisplayOrder >= next {
			next = p.DisplayOrder + 1
		}
	}
	return next, nil
}

func (m *memPhotos) ListByPostID(ctx context.Context, postID int64) ([]*models.PostPhoto, error) {
	out := []*models.PostPhoto{}
	for _, p := range m.created {
		if p.PostID == postID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPhotos) ListByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]*models.PostPhoto, error) {
	out := map[int64][]*models.PostPhoto{}
	for _, id := range postIDs {
		photos, _ := m.ListByPostID(ctx, id)
		if len(photos) > 0 {
			out[id] = photos
		}
	}
	return out, nil
}

// memReactions behaves like the unique (post_id, user_id) tables.
type memReactions struct {
	likes     map[[2]int64]bool
	bookmarks map[[2]int64]bool
}

func newMemReactions() *memReactions {
	return &memReactions{likes: map[[2]int64]bool{}, bookmarks: map[[2]int64]bool{}}
}

func (m *memReactions) AddLike(ctx context.Context, postID, userID int64) (bool, error) {
	k := [2]int64{postID, userID}
	if m.likes[k] {
		return false, nil
	}
	m.likes[k] = true
	return true, nil
}

func (m *memReactions) RemoveLike(ctx context.Context, postID, userID int64) (bool, error) {
	k := [2]int64{postID, userID}
	had := m.likes[k]
	delete(m.likes, k)
	return had, nil
}

func (m *memReactions) CountLikes(ctx context.Context, postID int64) (int, error) {
	n := 0
	for k := range m.likes {
		if k[0] == postID {
			n++
		}
	}
	return n, nil
}

func (m *memReactions) AddBookmark(ctx context.Context, postID, userID int64) (bool, error) {
	k := [2]int64{postID, userID}
	if m.bookmarks[k] {
		return false, nil
	}
	m.bookmarks[k] = true
	return true, nil
}

func (m *memReactions) RemoveBookmark(ctx context.Context, postID, userID int64) (bool, error) {
	k := [2]int64{postID, userID}
	had := m.bookmarks[k]
	delete(m.bookmarks, k)
	return had, nil
}

type memComments struct {
	comments map[int64]*models.Comment
	removed  []int64
}

func newMemComments(comments ...*models.Comment) *memComments {
	m := &memComments{comments: map[int64]*models.Comment{}}
	for _, c := range comments {
		m.comments[c.ID] = c
	}
	return m
}

func (m *memComments) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	c := *comment
	c.ID = int64(len(m.comments) + 100)
	m.comments[c.ID] = &c
	return c.ID, nil
}

func (m *memComments) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memComments) ListByPostID(ctx context.Context, postID int64) ([]*models.Comment, error) {
	out := []*models.Comment{}
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memComments) Remove(ctx context.Context, id int64) error {
	delete(m.comments, id)
	m.removed = append(m.removed, id)
	return nil
}

type testFile struct {
	Name string
	Data []byte
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

// fileHeaders builds multipart file headers the way fiber hands them to handlers.
func fileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

type memImages struct {
	images    []*models.PlaceImage
	createErr error
}

func (m *memImages) Create(ctx context.Context, tx *sql.Tx, img *models.PlaceImage) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	c := *img
	c.ID = int64(len(m.images) + 1)
	m.images = append(m.images, &c)
	return c.ID, nil
}

func (m *memImages) GetByID(ctx context.Context, id int64) (*models.PlaceImage, error) {
	for _, img := range m.images {
		if img.ID == id {
			c := *img
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memImages) ListByPlaceID(ctx context.Context, placeID int64) ([]*models.PlaceImage, error) {
	return m.images, nil
}

func (m *memImages) Remove(ctx context.Context, id int64) error {
	return nil
}
