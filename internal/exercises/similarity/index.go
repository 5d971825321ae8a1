package similarity

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/2beens/gymcore/internal/exercises/catalog"
)

const MaxFeatures = 5000

var (
	ErrEmptyCorpus     = errors.New("empty corpus")
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)

type Match struct {
	Exercise catalog.Exercise `json:"exercise"`
	Score    float64          `json:"similarity_score"`
}

// Index holds the pairwise cosine similarity of the TF-IDF vectors of a set of
// exercises. It is never modified after Build.
type Index struct {
	exercises  []catalog.Exercise
	vocabulary []string
	matrix     [][]float64
}

func Document(e catalog.Exercise) string {
	return strings.Join([]string{e.Title, e.Description, e.Type, e.BodyPart, e.Equipment, e.Level}, " ")
}

func Build(exercises []catalog.Exercise) (*Index, error) {
	if len(exercises) == 0 {
		return nil, ErrEmptyCorpus
	}

	docTerms := make([]map[string]int, len(exercises))
	corpusFreq := map[string]int{}
	for i, e := range exercises {
		counts := map[string]int{}
		for _, term := range terms(tokenize(Document(e))) {
			counts[term]++
			corpusFreq[term]++
		}
		docTerms[i] = counts
	}
	if len(corpusFreq) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocabulary := buildVocabulary(corpusFreq, MaxFeatures)
	features := make(map[string]int, len(vocabulary))
	for i, term := range vocabulary {
		features[term] = i
	}

	n := len(exercises)
	df := make([]int, len(vocabulary))
	for _, counts := range docTerms {
		for term := range counts {
			if f, ok := features[term]; ok {
				df[f]++
			}
		}
	}
	idf := make([]float64, len(vocabulary))
	for f := range vocabulary {
		idf[f] = math.Log(float64(1+n)/float64(1+df[f])) + 1
	}

	rows := make([][]float64, n)
	for i, counts := range docTerms {
		row := make([]float64, len(vocabulary))
		for term, count := range counts {
			if f, ok := features[term]; ok {
				row[f] = float64(count) * idf[f]
			}
		}
		normalize(row)
		rows[i] = row
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dot := 0.0
			for f := range rows[i] {
				dot += rows[i][f] * rows[j][f]
			}
			matrix[i][j] = dot
			matrix[j][i] = dot
		}
	}

	idx := &Index{
		exercises:  make([]catalog.Exercise, n),
		vocabulary: vocabulary,
		matrix:     matrix,
	}
	copy(idx.exercises, exercises)
	return idx, nil
}

// buildVocabulary keeps the limit most frequent terms of the corpus, ties broken
// alphabetically, and returns them in alphabetical order.
func buildVocabulary(corpusFreq map[string]int, limit int) []string {
	vocabulary := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		vocabulary = append(vocabulary, term)
	}
	if len(vocabulary) > limit {
		sort.Slice(vocabulary, func(i, j int) bool {
			fi, fj := corpusFreq[vocabulary[i]], corpusFreq[vocabulary[j]]
			if fi != fj {
				return fi > fj
			}
			return vocabulary[i] < vocabulary[j]
		})
		vocabulary = vocabulary[:limit]
	}
	sort.Strings(vocabulary)
	return vocabulary
}

func normalize(row []float64) {
	sum := 0.0
	for _, v := range row {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range row {
		row[i] /= norm
	}
}

// Nearest returns up to k exercises most similar to the first exercise titled
// title, excluding the exercise itself.
func (idx *Index) Nearest(title string, k int) []Match {
	if idx == nil || k <= 0 {
		return []Match{}
	}

	query := -1
	for i, e := range idx.exercises {
		if e.Title == title {
			query = i
			break
		}
	}
	if query < 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(idx.exercises)-1)
	for i, score := range idx.matrix[query] {
		if i == query {
			continue
		}
		matches = append(matches, Match{
			Exercise: idx.exercises[i],
			Score:    score,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}

	return matches
}

// Similarity returns the cosine similarity of the exercises at positions i and j,
// or 0 when either position is not in the index.
func (idx *Index) Similarity(i, j int) float64 {
	if idx == nil || i < 0 || j < 0 || i >= len(idx.matrix) || j >= len(idx.matrix[i]) {
		return 0
	}
	return idx.matrix[i][j]
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.exercises)
}

func (idx *Index) VocabularySize() int {
	if idx == nil {
		return 0
	}
	return len(idx.vocabulary)
}
