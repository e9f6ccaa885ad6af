package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/queue"
	"github.com/yourusername/estate-service/internal/repository"
)

// fakeUserStore is an in-memory users collection. Watchers are notified
// synchronously and never under the store's lock.
type fakeUserStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	watchers map[string]map[int]func(*models.User)
	errFns   map[string]map[int]func(error)
	nextID   int

	updateRoleErr   error
	updateRoleCalls int
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{
		users:    make(map[string]*models.User),
		watchers: make(map[string]map[int]func(*models.User)),
		errFns:   make(map[string]map[int]func(error)),
	}
	for _, u := range users {
		f.users[u.UserID] = u
	}
	return f
}

func (f *fakeUserStore) copyOf(userID string) *models.User {
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	c := *u
	return &c
}

func (f *fakeUserStore) notify(userID string) {
	f.mu.Lock()
	snapshot := f.copyOf(userID)
	var fns []func(*models.User)
	for _, fn := range f.watchers[userID] {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func (f *fakeUserStore) failWatchers(userID string, err error) {
	f.mu.Lock()
	var fns []func(error)
	for _, fn := range f.errFns[userID] {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(err)
	}
}

func (f *fakeUserStore) watcherCount(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watchers[userID])
}

func (f *fakeUserStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.copyOf(userID)
	if u == nil {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	f.mu.Lock()
	f.updateRoleCalls++
	if f.updateRoleErr != nil {
		f.mu.Unlock()
		return f.updateRoleErr
	}
	u, ok := f.users[userID]
	if !ok {
		f.mu.Unlock()
		return repository.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	f.mu.Unlock()

	f.notify(userID)
	return nil
}

func (f *fakeUserStore) WatchUser(ctx context.Context, userID string, onNext func(*models.User), onError func(error)) func() {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	if f.watchers[userID] == nil {
		f.watchers[userID] = make(map[int]func(*models.User))
		f.errFns[userID] = make(map[int]func(error))
	}
	f.watchers[userID][id] = onNext
	f.errFns[userID][id] = onError
	snapshot := f.copyOf(userID)
	f.mu.Unlock()

	onNext(snapshot)

	return func() {
		f.mu.Lock()
		delete(f.watchers[userID], id)
		delete(f.errFns[userID], id)
		f.mu.Unlock()
	}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	if _, exists := f.users[user.UserID]; !exists {
		c := *user
		f.users[user.UserID] = &c
	}
	f.mu.Unlock()
	f.notify(user.UserID)
	return nil
}

func (f *fakeUserStore) UpsertProfile(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	u, ok := f.users[user.UserID]
	if !ok {
		u = &models.User{UserID: user.UserID}
		f.users[user.UserID] = u
	}
	u.Name = user.Name
	u.Email = user.Email
	u.Mobile = user.Mobile
	u.PhotoURL = user.PhotoURL
	u.UpdatedAt = time.Now()
	f.mu.Unlock()

	f.notify(user.UserID)
	return nil
}

func (f *fakeUserStore) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	f.mu.Lock()
	u, ok := f.users[userID]
	if !ok {
		f.mu.Unlock()
		return repository.ErrNotFound
	}
	u.Blocked = blocked
	u.UpdatedAt = time.Now()
	f.mu.Unlock()

	f.notify(userID)
	return nil
}

func (f *fakeUserStore) UpdateFCMToken(ctx context.Context, userID, fcmToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.FCMToken = fcmToken
	return nil
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.User, 0, len(f.users))
	for id := range f.users {
		out = append(out, f.copyOf(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type fakeRoleRequestStore struct {
	mu       sync.Mutex
	requests map[string]*models.RoleRequest
	nextID   int

	// statusErr fails UpdateStatus calls that write the given status
	statusErr map[models.RequestStatus]error
}

func newFakeRoleRequestStore() *fakeRoleRequestStore {
	return &fakeRoleRequestStore{
		requests:  make(map[string]*models.RoleRequest),
		statusErr: make(map[models.RequestStatus]error),
	}
}

func (f *fakeRoleRequestStore) CreateRoleRequest(ctx context.Context, req *models.RoleRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("req-%d", f.nextID)
	c := *req
	c.RequestID = id
	f.requests[id] = &c
	return id, nil
}

func (f *fakeRoleRequestStore) GetRoleRequest(ctx context.Context, requestID string) (*models.RoleRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *r
	return &c, nil
}

func (f *fakeRoleRequestStore) FindPending(ctx context.Context, userID string, role models.Role) (*models.RoleRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.UserID == userID && r.RequestedRole == role && r.Status == models.StatusPending {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRoleRequestStore) list(keep func(*models.RoleRequest) bool) []*models.RoleRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.RoleRequest
	for _, r := range f.requests {
		if keep(r) {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRoleRequestStore) ListRoleRequests(ctx context.Context, status models.RequestStatus) ([]*models.RoleRequest, error) {
	return f.list(func(r *models.RoleRequest) bool { return status == "" || r.Status == status }), nil
}

func (f *fakeRoleRequestStore) ListByUser(ctx context.Context, userID string) ([]*models.RoleRequest, error) {
	return f.list(func(r *models.RoleRequest) bool { return r.UserID == userID }), nil
}

func (f *fakeRoleRequestStore) UpdateStatus(ctx context.Context, requestID string, status models.RequestStatus, processedBy string, processedAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.statusErr[status]; err != nil {
		return err
	}
	r, ok := f.requests[requestID]
	if !ok {
		return repository.ErrNotFound
	}
	r.Status = status
	r.ProcessedBy = processedBy
	r.ProcessedAt = processedAt
	return nil
}

type fakeAuctionStore struct {
	mu       sync.Mutex
	auctions map[string]*models.Auction
	nextID   int
	lists    int
}

func newFakeAuctionStore(auctions ...*models.Auction) *fakeAuctionStore {
	f := &fakeAuctionStore{auctions: make(map[string]*models.Auction)}
	for _, a := range auctions {
		f.auctions[a.AuctionID] = a
	}
	return f
}

func auctionFromInput(a *models.Auction, in *models.AuctionInput) {
	a.Title = in.Title
	a.PropertyType = in.PropertyType
	a.City = in.City
	a.Address = in.Address
	a.BankAgency = in.BankAgency
	a.ReservePrice = in.ReservePrice
	a.EMDAmount = in.EMDAmount
	a.AuctionDate = models.StoredDate{Time: in.AuctionDate}
	a.InspectionDate = models.StoredDate{}
	if in.InspectionDate != nil {
		a.InspectionDate = models.StoredDate{Time: *in.InspectionDate}
	}
	a.EMDSubmissionDate = models.StoredDate{}
	if in.EMDSubmissionDate != nil {
		a.EMDSubmissionDate = models.StoredDate{Time: *in.EMDSubmissionDate}
	}
	a.UpdatedAt = time.Now()
}

func (f *fakeAuctionStore) CreateAuction(ctx context.Context, ownerID string, in *models.AuctionInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a := &models.Auction{
		AuctionID: fmt.Sprintf("auction-%d", f.nextID),
		OwnerID:   ownerID,
		Status:    models.AuctionActive,
		CreatedAt: time.Now(),
	}
	auctionFromInput(a, in)
	f.auctions[a.AuctionID] = a
	return a.AuctionID, nil
}

func (f *fakeAuctionStore) GetAuction(ctx context.Context, auctionID string) (*models.Auction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.auctions[auctionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (f *fakeAuctionStore) UpdateAuction(ctx context.Context, auctionID string, in *models.AuctionInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.auctions[auctionID]
	if !ok {
		return repository.ErrNotFound
	}
	auctionFromInput(a, in)
	return nil
}

func (f *fakeAuctionStore) ArchiveAuction(ctx context.Context, auctionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.auctions[auctionID]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = models.AuctionArchived
	return nil
}

func (f *fakeAuctionStore) list(keep func(*models.Auction) bool) []*models.Auction {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	var out []*models.Auction
	for _, a := range f.auctions {
		if keep(a) {
			c := *a
			out = append(out, &c)
		}
	}
	return out
}

func (f *fakeAuctionStore) ListByStatus(ctx context.Context, status models.AuctionStatus) ([]*models.Auction, error) {
	return f.list(func(a *models.Auction) bool { return a.Status == status }), nil
}

func (f *fakeAuctionStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Auction, error) {
	return f.list(func(a *models.Auction) bool { return a.OwnerID == ownerID }), nil
}

// memoryAuctionCache is a map-backed AuctionCache
type memoryAuctionCache struct {
	mu      sync.Mutex
	active  []*models.Auction
	cached  bool
	cleared int
}

func (m *memoryAuctionCache) GetActive(ctx context.Context) ([]*models.Auction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.cached
}

func (m *memoryAuctionCache) SetActive(ctx context.Context, auctions []*models.Auction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active, m.cached = auctions, true
}

func (m *memoryAuctionCache) Invalidate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active, m.cached = nil, false
	m.cleared++
}

type fakePropertyStore struct {
	mu         sync.Mutex
	properties map[string]*models.Property
	nextID     int
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: make(map[string]*models.Property)}
}

func (f *fakePropertyStore) CreateProperty(ctx context.Context, property *models.Property) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("prop-%d", f.nextID)
	c := *property
	c.PropertyID = id
	f.properties[id] = &c
	return id, nil
}

func (f *fakePropertyStore) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[propertyID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakePropertyStore) GetProperties(ctx context.Context, ids []string) ([]*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Property
	for _, id := range ids {
		if p, ok := f.properties[id]; ok {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakePropertyStore) UpdateProperty(ctx context.Context, propertyID string, in *models.PropertyInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[propertyID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Title = in.Title
	p.Price = in.Price
	p.City = in.City
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakePropertyStore) SoftDeleteProperty(ctx context.Context, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[propertyID]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	p.IsActive = false
	p.DeletedAt = &now
	return nil
}

func (f *fakePropertyStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Property
	for _, p := range f.properties {
		if p.Owner == ownerID && p.IsActive {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakePropertyStore) ListActive(ctx context.Context) ([]*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Property
	for _, p := range f.properties {
		if p.IsActive {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PropertyID < out[j].PropertyID })
	return out, nil
}

type fakeFavoriteStore struct {
	mu        sync.Mutex
	favorites map[string]map[string]time.Time
	clock     time.Time
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{
		favorites: make(map[string]map[string]time.Time),
		clock:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeFavoriteStore) AddFavorite(ctx context.Context, userID, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.favorites[userID] == nil {
		f.favorites[userID] = make(map[string]time.Time)
	}
	f.clock = f.clock.Add(time.Second)
	f.favorites[userID][propertyID] = f.clock
	return nil
}

func (f *fakeFavoriteStore) RemoveFavorite(ctx context.Context, userID, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.favorites[userID], propertyID)
	return nil
}

func (f *fakeFavoriteStore) IsFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.favorites[userID][propertyID]
	return ok, nil
}

func (f *fakeFavoriteStore) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Favorite
	for id, at := range f.favorites[userID] {
		out = append(out, models.Favorite{PropertyID: id, AddedAt: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.After(out[j].AddedAt) })
	return out, nil
}

type fakeSupportStore struct {
	mu       sync.Mutex
	requests []*models.SupportRequest
}

func (f *fakeSupportStore) CreateSupportRequest(ctx context.Context, req *models.SupportRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *req
	c.RequestID = fmt.Sprintf("support-%d", len(f.requests)+1)
	f.requests = append(f.requests, &c)
	return c.RequestID, nil
}

func (f *fakeSupportStore) ListSupportRequests(ctx context.Context, limit int) ([]*models.SupportRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.requests) {
		limit = len(f.requests)
	}
	return f.requests[:limit], nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishRoleRequestProcessed(ctx context.Context, event queue.RoleRequestProcessedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockIdentity struct {
	mock.Mock
}

func (m *mockIdentity) VerifyIDToken(ctx context.Context, idToken string) (*models.Identity, error) {
	args := m.Called(ctx, idToken)
	if v := args.Get(0); v != nil {
		return v.(*models.Identity), args.Error(1)
	}
	return nil, args.Error(1)
}

func completeUser(id string, role models.Role) *models.User {
	return &models.User{
		UserID:    id,
		Name:      strings.ToUpper(id[:1]) + id[1:],
		Email:     id + "@example.com",
		Mobile:    "+919876543210",
		Role:      role,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
