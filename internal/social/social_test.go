package social

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastian/job-pipeline/internal/browser"
	"github.com/sebastian/job-pipeline/internal/dedup"
)

// scriptedDriver serves per-URL sequences of focus stops. Synthetic
// attributes stand in for DOM lookups: "closest-<attr>" answers ClosestAttr
// and "descendants" answers HasDescendant.
type scriptedDriver struct {
	pages     map[string][]browser.FocusedElement
	newsLinks []string

	current []browser.FocusedElement
	pos     int

	visited []string
	typed   []string
	entered int
	escaped int
	cleared int
}

func (f *scriptedDriver) Navigate(ctx context.Context, url string) error {
	f.visited = append(f.visited, url)
	f.current = f.pages[url]
	f.pos = 0
	return nil
}

func (f *scriptedDriver) ActiveElement(ctx context.Context) (browser.FocusedElement, error) {
	if f.pos == 0 || f.pos > len(f.current) {
		return browser.FocusedElement{Tag: "body"}, nil
	}
	return f.current[f.pos-1], nil
}

func (f *scriptedDriver) ClosestAttr(ctx context.Context, attr string) (string, error) {
	el, _ := f.ActiveElement(ctx)
	return el.Attr("closest-" + attr), nil
}

func (f *scriptedDriver) HasDescendant(ctx context.Context, selector string) (bool, error) {
	el, _ := f.ActiveElement(ctx)
	return strings.Contains(el.Attr("descendants"), selector), nil
}

func (f *scriptedDriver) Links(ctx context.Context, selector string) ([]string, error) {
	return f.newsLinks, nil
}

func (f *scriptedDriver) SendTab(ctx context.Context) error    { f.pos++; return nil }
func (f *scriptedDriver) SendEnter(ctx context.Context) error  { f.entered++; return nil }
func (f *scriptedDriver) SendEscape(ctx context.Context) error { f.escaped++; return nil }

func (f *scriptedDriver) Type(ctx context.Context, text string) error {
	f.typed = append(f.typed, text)
	return nil
}

func (f *scriptedDriver) ClearInput(ctx context.Context) error { f.cleared++; return nil }

func (f *scriptedDriver) Sleep(ctx context.Context, d time.Duration) {}

func newNetworker(t *testing.T, d browser.Driver) *Networker {
	t.Helper()
	base := t.TempDir()
	return &Networker{
		Driver:      d,
		BirthdayLog: dedup.NewJSONStore[dedup.BirthdayEntry](filepath.Join(base, "birthday_log.json")),
		NewsLog:     dedup.NewJSONStore[string](filepath.Join(base, "news_log.json")),
		LikedPosts:  dedup.NewJSONStore[string](filepath.Join(base, "liked_posts_log.json")),
		Today:       func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func birthdayCard(label string) browser.FocusedElement {
	return browser.FocusedElement{Tag: "a", Attrs: map[string]string{
		"data-view-name": "nurture-card-primary-button",
		"aria-label":     label,
	}}
}

func TestWishBirthdays_SendsAndLogs(t *testing.T) {
	d := &scriptedDriver{pages: map[string][]browser.FocusedElement{
		BirthdayURL: {
			{Tag: "a"},
			birthdayCard("Message Alice Smith: Happy birthday!"),
			birthdayCard("Message Bob Jones: Wish Bob a belated happy birthday"),
		},
	}}
	n := newNetworker(t, d)

	wished, err := n.WishBirthdays(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, wished)

	require.Len(t, d.typed, 2)
	assert.Contains(t, d.typed[0], "Happy Birthday, Alice!")
	assert.Contains(t, d.typed[1], "belated birthday, Bob!")
	assert.Equal(t, 2, d.cleared)

	entries := n.BirthdayLog.Load()
	require.Len(t, entries, 2)
	assert.Equal(t, dedup.BirthdayEntry{FullName: "Alice Smith", Date: "2024-05-01", Type: "birthday"}, entries[0])
	assert.Equal(t, dedup.BirthdayEntry{FullName: "Bob Jones", Date: "2024-05-01", Type: "belated birthday"}, entries[1])
}

func TestWishBirthdays_SkipsAlreadyWishedToday(t *testing.T) {
	d := &scriptedDriver{pages: map[string][]browser.FocusedElement{
		BirthdayURL: {birthdayCard("Message Alice Smith: Happy birthday!")},
	}}
	n := newNetworker(t, d)
	require.NoError(t, n.BirthdayLog.Save([]dedup.BirthdayEntry{
		{FullName: "Alice Smith", Date: "2024-05-01", Type: "birthday"},
	}))

	wished, err := n.WishBirthdays(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, wished)
	assert.Empty(t, d.typed)
	assert.Len(t, n.BirthdayLog.Load(), 1)
}

func TestWishBirthdays_ReloadsAfterEachSend(t *testing.T) {
	d := &scriptedDriver{pages: map[string][]browser.FocusedElement{
		BirthdayURL: {birthdayCard("Message Alice Smith: Happy birthday!")},
	}}
	n := newNetworker(t, d)

	_, err := n.WishBirthdays(context.Background())
	require.NoError(t, err)

	// Initial load plus one reload after the send.
	assert.Equal(t, []string{BirthdayURL, BirthdayURL}, d.visited)
}

func catchUpCard() browser.FocusedElement {
	return browser.FocusedElement{Tag: "div", Attrs: map[string]string{
		"descendants": unreactedSelector,
	}}
}

func TestLikeCatchUpUpdates_LikesUnreactedCards(t *testing.T) {
	d := &scriptedDriver{pages: map[string][]browser.FocusedElement{
		JobChanges.URL(): {
			{Tag: "a"},
			catchUpCard(),
			{Tag: "span"},
			catchUpCard(),
		},
	}}
	n := newNetworker(t, d)

	liked, err := n.LikeCatchUpUpdates(context.Background(), JobChanges)
	require.NoError(t, err)
	assert.Equal(t, 2, liked)
	assert.Equal(t, 2, d.entered)
}

func TestLikeCatchUpUpdates_CapStopsRun(t *testing.T) {
	stops := make([]browser.FocusedElement, MaxActionsPerRun+5)
	for i := range stops {
		stops[i] = catchUpCard()
	}
	d := &scriptedDriver{pages: map[string][]browser.FocusedElement{
		WorkAnniversaries.URL(): stops,
	}}
	n := newNetworker(t, d)

	liked, err := n.LikeCatchUpUpdates(context.Background(), WorkAnniversaries)
	require.NoError(t, err)
	assert.Equal(t, MaxActionsPerRun, liked)
}

func likeButton(urn string) browser.FocusedElement {
	return browser.FocusedElement{Tag: "button", Attrs: map[string]string{
		"aria-label":       "React Like",
		"aria-pressed":     "false",
		"closest-data-urn": urn,
	}}
}

func TestLikeSearchResults_DedupsByURN(t *testing.T) {
	searchURL := "https://www.linkedin.com/search/results/content/?keywords=ai"
	d := &scriptedDriver{pages: map[string][]browser.FocusedElement{
		searchURL: {
			likeButton("urn:li:activity:1"),
			likeButton("urn:li:activity:2"),
			likeButton("urn:li:activity:3"),
		},
	}}
	n := newNetworker(t, d)
	require.NoError(t, n.LikedPosts.Save([]string{"urn:li:activity:2"}))

	liked, err := n.LikeSearchResults(context.Background(), searchURL, "ai")
	require.NoError(t, err)
	assert.Equal(t, 2, liked)
	assert.Equal(t, 2, d.entered)

	urns := n.LikedPosts.Load()
	assert.Equal(t, []string{"urn:li:activity:2", "urn:li:activity:1", "urn:li:activity:3"}, urns)
}

func TestLikeSearchResults_SkipsMissingURN(t *testing.T) {
	searchURL := "https://example.com/search"
	button := likeButton("")
	d := &scriptedDriver{pages: map[string][]browser.FocusedElement{
		searchURL: {button},
	}}
	n := newNetworker(t, d)

	liked, err := n.LikeSearchResults(context.Background(), searchURL, "tech")
	require.NoError(t, err)
	assert.Equal(t, 0, liked)
	assert.Equal(t, 0, d.entered)
}

func TestShareNews_SharesFirstUnreadAndLogs(t *testing.T) {
	shareButton := browser.FocusedElement{Tag: "button", Attrs: map[string]string{
		"aria-label": "Open share menu",
	}}
	d := &scriptedDriver{
		newsLinks: []string{
			"https://www.linkedin.com/news/story/read-1",
			"https://www.linkedin.com/news/story/fresh-2",
		},
		pages: map[string][]browser.FocusedElement{
			"https://www.linkedin.com/news/story/fresh-2": {{Tag: "a"}, shareButton},
		},
	}
	n := newNetworker(t, d)
	require.NoError(t, n.NewsLog.Save([]string{"https://www.linkedin.com/news/story/read-1"}))

	url, err := n.ShareNews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://www.linkedin.com/news/story/fresh-2", url)
	assert.Equal(t, []string{FeedURL, "https://www.linkedin.com/news/story/fresh-2"}, d.visited)
	assert.Equal(t, 1, d.entered)

	assert.Equal(t, []string{
		"https://www.linkedin.com/news/story/read-1",
		"https://www.linkedin.com/news/story/fresh-2",
	}, n.NewsLog.Load())
}

func TestShareNews_NothingUnread(t *testing.T) {
	d := &scriptedDriver{newsLinks: []string{"https://www.linkedin.com/news/story/read-1"}}
	n := newNetworker(t, d)
	require.NoError(t, n.NewsLog.Save([]string{"https://www.linkedin.com/news/story/read-1"}))

	url, err := n.ShareNews(context.Background())
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Equal(t, []string{FeedURL}, d.visited)
}
