package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// Clue is a single trivia question/answer pair.
type Clue struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Category is one trivia category with its clue set.
type Category struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Clues []Clue `json:"clues"`
}

// ErrNoValidClue is returned when a clue set contains no clue with both a
// question and an answer. The original picked clues in an unbounded loop and
// could hang on such a set; selection here is bounded instead.
var ErrNoValidClue = errors.New("no valid clue in category")

// Client fetches categories from a jservice-style trivia API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Category fetches one category's clue set by id.
func (c *Client) Category(ctx context.Context, id int) (*Category, error) {
	url := fmt.Sprintf("%s/api/category?id=%d", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trivia service returned %s", resp.Status)
	}

	var cat Category
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Valid reports whether the clue has both a question and an answer.
func (cl Clue) Valid() bool {
	return strings.TrimSpace(cl.Question) != "" && strings.TrimSpace(cl.Answer) != ""
}

// PickClue samples clues uniformly at random until a valid one turns up,
// giving up after maxAttempts draws.
func PickClue(clues []Clue, rng *rand.Rand, maxAttempts int) (Clue, error) {
	if len(clues) == 0 {
		return Clue{}, ErrNoValidClue
	}
	for i := 0; i < maxAttempts; i++ {
		cl := clues[rng.Intn(len(clues))]
		if cl.Valid() {
			return cl, nil
		}
	}
	return Clue{}, ErrNoValidClue
}

// TitleCase uppercases the first letter of every whitespace-separated word
// and lowercases the rest, for category display ("FOOD FOR THOUGHT" ->
// "Food For Thought").
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
