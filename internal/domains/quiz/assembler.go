package quiz

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/vidquiz/internal/types"
)

// Options controls how a quiz is drawn from the stored pool. At most one of
// TotalQuestions and QuestionsPerSegment should be set; when neither is,
// the whole pool is used.
// @Description Quiz assembly options
type Options struct {
	TotalQuestions      *int `json:"totalQuestions,omitempty" example:"10"`
	QuestionsPerSegment *int `json:"questionsPerSegment,omitempty" example:"2"`
	Shuffle             bool `json:"shuffle" example:"true"`
}

// Item is a stored question placed at QuestionIndex within an assembled quiz.
// @Description Question as presented in a quiz
type Item struct {
	QuestionIndex int `json:"questionIndex" example:"0"`
	types.Question
}

// Quiz is an assembled, ephemeral selection of questions.
// @Description Assembled quiz
type Quiz struct {
	QuizID         string    `json:"quizId" example:"01920b5e-8a4c-7b7e-9d52-3f0a8f9e6c11"`
	VideoID        string    `json:"videoId" example:"550e8400-e29b-41d4-a716-446655440000"`
	Questions      []Item    `json:"questions"`
	TotalQuestions int       `json:"totalQuestions" example:"10"`
	CreatedAt      time.Time `json:"createdAt"`
}

// QuestionIDs lists the stored identities in quiz order.
func (q *Quiz) QuestionIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(q.Questions))
	for i, item := range q.Questions {
		ids[i] = item.ID
	}
	return ids
}

// Assembler draws uniform samples without replacement from a question pool.
type Assembler struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewAssembler uses rng for every draw; nil uses the process wide source.
func NewAssembler(rng *rand.Rand) *Assembler {
	return &Assembler{rng: rng, now: time.Now}
}

// Assemble selects questions from pool according to opts.
func (a *Assembler) Assemble(videoID string, pool []types.Question, opts Options) (*Quiz, error) {
	if len(pool) == 0 {
		return nil, types.NotFoundf("no questions available for video %s", videoID)
	}
	if opts.TotalQuestions != nil && *opts.TotalQuestions < 1 {
		return nil, types.Validationf("totalQuestions must be at least 1")
	}
	if opts.QuestionsPerSegment != nil && *opts.QuestionsPerSegment < 1 {
		return nil, types.Validationf("questionsPerSegment must be at least 1")
	}

	var offsets []int
	switch {
	case opts.TotalQuestions != nil:
		offsets = a.sample(indexRange(0, len(pool)), *opts.TotalQuestions)
	case opts.QuestionsPerSegment != nil:
		for _, group := range groupBySegment(pool) {
			offsets = append(offsets, a.sample(group, *opts.QuestionsPerSegment)...)
		}
	default:
		offsets = indexRange(0, len(pool))
	}

	if opts.Shuffle {
		a.shuffle(offsets)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, types.Internal("generate quiz id", err)
	}

	items := make([]Item, len(offsets))
	for i, off := range offsets {
		items[i] = Item{QuestionIndex: i, Question: pool[off]}
	}

	return &Quiz{
		QuizID:         id.String(),
		VideoID:        videoID,
		Questions:      items,
		TotalQuestions: len(items),
		CreatedAt:      a.now(),
	}, nil
}

// sample shuffles candidates in place and keeps a prefix of size n, or the
// whole group when it is smaller.
func (a *Assembler) sample(candidates []int, n int) []int {
	a.shuffle(candidates)
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}

func (a *Assembler) shuffle(s []int) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if a.rng == nil {
		rand.Shuffle(len(s), swap)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rng.Shuffle(len(s), swap)
}

// groupBySegment returns pool offsets grouped per segment index, groups in
// ascending segment order and offsets in pool order.
func groupBySegment(pool []types.Question) [][]int {
	bySegment := make(map[int][]int)
	for i, q := range pool {
		bySegment[q.SegmentIndex] = append(bySegment[q.SegmentIndex], i)
	}

	keys := make([]int, 0, len(bySegment))
	for k := range bySegment {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	groups := make([][]int, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, bySegment[k])
	}
	return groups
}

func indexRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
