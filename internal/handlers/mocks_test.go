package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

type mockClientRepo struct {
	clients        map[string]*models.Client
	campaignCounts map[string]int64
	created        int
}

func newMockClientRepo(clients ...*models.Client) *mockClientRepo {
	m := &mockClientRepo{clients: map[string]*models.Client{}, campaignCounts: map[string]int64{}}
	for _, c := range clients {
		m.clients[c.ID] = c
	}
	return m
}

func (m *mockClientRepo) Create(ctx context.Context, client *models.Client) error {
	m.created++
	client.ID = fmt.Sprintf("client-%d", m.created)
	m.clients[client.ID] = client
	return nil
}

func (m *mockClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	c := m.clients[id]
	if c == nil {
		return nil, sql.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (m *mockClientRepo) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	for id, c := range m.clients {
		if id != excludeID && strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClientRepo) List(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	for _, c := range m.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockClientRepo) Update(ctx context.Context, id string, req *models.UpdateClientRequest) error {
	c := m.clients[id]
	if c == nil {
		return sql.ErrNoRows
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	return nil
}

func (m *mockClientRepo) Delete(ctx context.Context, id string) error {
	if n := m.campaignCounts[id]; n > 0 {
		return &interfaces.DeletionBlockedError{Resource: "client", References: map[string]int64{"campaigns": n}}
	}
	if m.clients[id] == nil {
		return sql.ErrNoRows
	}
	delete(m.clients, id)
	return nil
}

type mockCampaignRepo struct {
	campaigns map[string]*models.Campaign
	created   int
}

func newMockCampaignRepo(campaigns ...*models.Campaign) *mockCampaignRepo {
	m := &mockCampaignRepo{campaigns: map[string]*models.Campaign{}}
	for _, c := range campaigns {
		m.campaigns[c.ID] = c
	}
	return m
}

func (m *mockCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	m.created++
	campaign.ID = fmt.Sprintf("campaign-%d", m.created)
	m.campaigns[campaign.ID] = campaign
	return nil
}

func (m *mockCampaignRepo) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	c := m.campaigns[id]
	if c == nil {
		return nil, sql.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (m *mockCampaignRepo) List(ctx context.Context, filter interfaces.CampaignFilter) ([]*models.Campaign, error) {
	var out []*models.Campaign
	for _, c := range m.campaigns {
		if filter.ClientID == "" || c.ClientID == filter.ClientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCampaignRepo) Update(ctx context.Context, id string, campaign *models.Campaign) error {
	if m.campaigns[id] == nil {
		return sql.ErrNoRows
	}
	m.campaigns[id] = campaign
	return nil
}

func (m *mockCampaignRepo) Delete(ctx context.Context, id string) error {
	if m.campaigns[id] == nil {
		return sql.ErrNoRows
	}
	delete(m.campaigns, id)
	return nil
}

type mockAdRepo struct {
	ads   map[string]*models.Ad
	order []string
}

func newMockAdRepo(ads ...*models.Ad) *mockAdRepo {
	m := &mockAdRepo{ads: map[string]*models.Ad{}}
	for _, a := range ads {
		m.ads[a.ID] = a
		m.order = append(m.order, a.ID)
	}
	return m
}

func (m *mockAdRepo) Create(ctx context.Context, ad *models.Ad) error {
	ad.ID = fmt.Sprintf("ad-%d", len(m.order)+1)
	m.ads[ad.ID] = ad
	m.order = append(m.order, ad.ID)
	return nil
}

func (m *mockAdRepo) GetByID(ctx context.Context, id string) (*models.Ad, error) {
	a := m.ads[id]
	if a == nil {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (m *mockAdRepo) matching(filter models.AdFilter) []*models.Ad {
	var out []*models.Ad
	for _, id := range m.order {
		a := m.ads[id]
		if a == nil {
			continue
		}
		if filter.CampaignID != "" && a.CampaignID != filter.CampaignID {
			continue
		}
		if filter.Hot != nil && a.IsHot != *filter.Hot {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (m *mockAdRepo) List(ctx context.Context, filter models.AdFilter) ([]*models.Ad, error) {
	all := m.matching(filter)
	if filter.Offset >= len(all) {
		return nil, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (m *mockAdRepo) Count(ctx context.Context, filter models.AdFilter) (int, error) {
	return len(m.matching(filter)), nil
}

func (m *mockAdRepo) Update(ctx context.Context, ad *models.Ad) error {
	if m.ads[ad.ID] == nil {
		return sql.ErrNoRows
	}
	m.ads[ad.ID] = ad
	return nil
}

func (m *mockAdRepo) IncrementLikes(ctx context.Context, id string) (int, error) {
	a := m.ads[id]
	if a == nil {
		return 0, sql.ErrNoRows
	}
	a.LikesCount++
	return a.LikesCount, nil
}

func (m *mockAdRepo) IncrementViews(ctx context.Context, id string) (int, error) {
	a := m.ads[id]
	if a == nil {
		return 0, sql.ErrNoRows
	}
	a.ViewsCount++
	return a.ViewsCount, nil
}

func (m *mockAdRepo) Delete(ctx context.Context, id string) error {
	if m.ads[id] == nil {
		return sql.ErrNoRows
	}
	delete(m.ads, id)
	return nil
}

type mockAdMediaRepo struct {
	rows       map[string][]models.AdMedia
	mainURL    map[string]string
	versions   map[string]int64
	replaceErr error
	// beforeReplace runs ahead of the version check, standing in for a
	// request that committed in between.
	beforeReplace func(adID string)
}

func newMockAdMediaRepo() *mockAdMediaRepo {
	return &mockAdMediaRepo{rows: map[string][]models.AdMedia{}, mainURL: map[string]string{}, versions: map[string]int64{}}
}

func (m *mockAdMediaRepo) ListByAd(ctx context.Context, adID string) ([]models.AdMedia, error) {
	rows := append([]models.AdMedia{}, m.rows[adID]...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	return rows, nil
}

func (m *mockAdMediaRepo) Gallery(ctx context.Context, adID string) ([]models.AdMedia, int64, error) {
	rows, err := m.ListByAd(ctx, adID)
	return rows, m.versions[adID], err
}

func (m *mockAdMediaRepo) ReplaceForAd(ctx context.Context, adID string, version int64, media []models.AdMedia) error {
	if m.beforeReplace != nil {
		m.beforeReplace(adID)
	}
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if m.versions[adID] != version {
		return interfaces.ErrStaleMedia
	}
	m.versions[adID]++
	m.rows[adID] = append([]models.AdMedia{}, media...)
	m.mainURL[adID] = ""
	for _, row := range media {
		if row.IsMain {
			m.mainURL[adID] = row.URL
		}
	}
	return nil
}

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	cleared []string
	failOn  string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) Save(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && strings.HasSuffix(key, s.failOn) {
		return "", errors.New("store unavailable")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	s.objects[key] = buf.Bytes()
	return "/uploads/" + key, nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memStore) Clear(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.objects {
		if strings.HasPrefix(key, prefix+"/") {
			delete(s.objects, key)
		}
	}
	s.cleared = append(s.cleared, prefix)
	return nil
}

type mockUserRepo struct {
	users map[string]*models.User
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u := m.users[id]
	if u == nil {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.users[user.ID] == nil {
		return sql.ErrNoRows
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if m.users[id] == nil {
		return sql.ErrNoRows
	}
	delete(m.users, id)
	return nil
}

type mockPostRepo struct {
	posts      map[string]*models.Post
	lastFilter interfaces.PostFilter
}

func newMockPostRepo(posts ...*models.Post) *mockPostRepo {
	m := &mockPostRepo{posts: map[string]*models.Post{}}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

func (m *mockPostRepo) Create(ctx context.Context, post *models.Post) error {
	post.ID = fmt.Sprintf("post-%d", len(m.posts)+1)
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	p := m.posts[id]
	if p == nil {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (m *mockPostRepo) List(ctx context.Context, filter interfaces.PostFilter) ([]models.Post, error) {
	m.lastFilter = filter
	var out []models.Post
	for _, p := range m.posts {
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Published != nil && p.Published != *filter.Published {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPostRepo) Update(ctx context.Context, post *models.Post) error {
	if m.posts[post.ID] == nil {
		return sql.ErrNoRows
	}
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	if m.posts[id] == nil {
		return sql.ErrNoRows
	}
	delete(m.posts, id)
	return nil
}
