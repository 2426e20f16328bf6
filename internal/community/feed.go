package community

import (
	"errors"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/pressure-headache/internal/profile"
	"github.com/i474232898/pressure-headache/internal/weather"
)

// DefaultPostCount is the size of a generated feed.
const DefaultPostCount = 20

var ErrPostNotFound = errors.New("post not found")

// PostWeather is the weather the poster reported alongside the post.
type PostWeather struct {
	Condition      weather.Condition `json:"condition"`
	Pressure       float64           `json:"pressure"`
	PressureChange float64           `json:"pressureChange"`
}

// Post is an anonymized symptom report shared with other users.
type Post struct {
	ID             string      `json:"id"`
	UserName       string      `json:"userName"`
	UserIcon       string      `json:"userIcon"`
	Prefecture     string      `json:"prefecture"`
	PostedHoursAgo int         `json:"postedHoursAgo"`
	Weather        PostWeather `json:"weather"`
	Symptoms       []string    `json:"symptoms"`
	Note           string      `json:"note"`
	EmpathyCount   int         `json:"empathyCount"`
	IsEmpathized   bool        `json:"isEmpathized"`
}

var (
	userNames   = []string{"Joan", "Esteban", "Dilap", "Gittens", "Mika", "Ren"}
	userIcons   = []string{"🐶", "😺", "🐼", "🐻", "🐰"}
	prefectures = []string{"Tokyo", "Osaka", "Aichi", "Fukuoka", "Hokkaido", "Okinawa"}
	conditions  = []weather.Condition{weather.ConditionClear, weather.ConditionCloudy, weather.ConditionRain}
	symptoms    = []string{
		profile.SymptomHeadache, profile.SymptomDizziness, profile.SymptomStiffShoulders,
		profile.SymptomDrowsiness, profile.SymptomJointPain, profile.SymptomFatigue,
		profile.SymptomNausea, profile.SymptomTinnitus, profile.SymptomFever,
		profile.SymptomLossOfAppetite, profile.SymptomSkinTrouble,
	}
	notes = []string{
		"My head has felt heavy all day and I couldn't focus on anything.",
		"Bad dizziness since this morning, probably the pressure.",
		"Shoulders are so stiff I can barely move them.",
		"My joints always ache when the seasons change.",
		"Nauseous and no appetite. Going to rest.",
		"Feeling chilly and generally unwell.",
		"Not sure if it's stress but my skin is acting up.",
	}
)

// Generate builds n simulated posts from seed. Equal seeds give equal feeds.
func Generate(seed int64, n int) []Post {
	rnd := rand.New(rand.NewSource(seed))
	pick := func(s []string) string { return s[rnd.Intn(len(s))] }

	posts := make([]Post, 0, n)
	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(rnd)
		if err != nil {
			id = uuid.New()
		}

		count := rnd.Intn(3) + 1
		perm := rnd.Perm(len(symptoms))
		picked := make([]string, 0, count)
		for _, idx := range perm[:count] {
			picked = append(picked, symptoms[idx])
		}

		posts = append(posts, Post{
			ID:             id.String(),
			UserName:       pick(userNames),
			UserIcon:       pick(userIcons),
			Prefecture:     pick(prefectures),
			PostedHoursAgo: rnd.Intn(10) + 1,
			Weather: PostWeather{
				Condition:      conditions[rnd.Intn(len(conditions))],
				Pressure:       float64(995 + rnd.Intn(30)),
				PressureChange: math.Round((rnd.Float64()*10-5)*10) / 10,
			},
			Symptoms:     picked,
			Note:         pick(notes),
			EmpathyCount: rnd.Intn(50),
			IsEmpathized: rnd.Intn(2) == 1,
		})
	}
	return posts
}

// Feed holds the community posts and the current user's empathy marks.
type Feed struct {
	mu    sync.RWMutex
	posts []Post
}

func NewFeed(posts []Post) *Feed {
	return &Feed{posts: posts}
}

// Posts returns a copy of the feed, most recent first as generated.
func (f *Feed) Posts() []Post {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Post, len(f.posts))
	copy(out, f.posts)
	return out
}

// ToggleEmpathy flips the empathy mark on the post and adjusts its count.
func (f *Feed) ToggleEmpathy(id string) (Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.posts {
		p := &f.posts[i]
		if p.ID != id {
			continue
		}
		if p.IsEmpathized {
			p.EmpathyCount--
		} else {
			p.EmpathyCount++
		}
		p.IsEmpathized = !p.IsEmpathized
		return *p, nil
	}
	return Post{}, ErrPostNotFound
}
