package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	trainingIterations = 2000
	learningRate       = 1.0
	// inverse regularisation strength, as in a default logistic regression
	regularisationC = 1.0
)

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

var stopWords = toSet(strings.Fields(`
	a about above across after afterwards again against all almost alone along already also although
	always am among amongst an and another any anyhow anyone anything anyway anywhere are around as at
	be became because become becomes becoming been before beforehand behind being below beside besides
	between beyond both but by can cannot could de do done down due during each eg either else elsewhere
	enough etc even ever every everyone everything everywhere except few for former formerly from further
	had has have he hence her here hereafter hereby herein hers herself him himself his how however ie if
	in inc indeed into is it its itself last latter latterly least less ltd made many may me meanwhile
	might mine more moreover most mostly much must my myself namely neither never nevertheless next no
	nobody none noone nor not nothing now nowhere of off often on once one only onto or other others
	otherwise our ours ourselves out over own per perhaps please rather re same seem seemed seeming seems
	several she should since so some somehow someone something sometime sometimes somewhere still such
	than that the their them themselves then thence there thereafter thereby therefore therein thereupon
	these they this those though through throughout thru thus to together too toward towards un under
	until up upon us very via was we well were what whatever when whence whenever where whereafter whereas
	whereby wherein whereupon wherever whether which while whither who whoever whole whom whose why will
	with within without would yet you your yours yourself yourselves`))

var ErrEmptyCorpus = errors.New("training corpus is empty")

type Classifier interface {
	// Predict returns the most likely role and its probability rounded to
	// two decimals.
	Predict(text string) (string, float64)
}

// Model is a TF-IDF vectoriser followed by a multinomial logistic
// regression. It serialises to JSON so a trained model can be reused.
type Model struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Classes    []string       `json:"classes"`
	Weights    [][]float64    `json:"weights"`
	Bias       []float64      `json:"bias"`
}

func TrainModel(samples []TrainingSample) (*Model, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyCorpus
	}

	docs := make([][]string, len(samples))
	terms := make(map[string]bool)
	classSet := make(map[string]bool)
	for i, s := range samples {
		docs[i] = tokenize(s.Text)
		for _, t := range docs[i] {
			terms[t] = true
		}
		classSet[s.Category] = true
	}

	m := &Model{
		Vocabulary: make(map[string]int, len(terms)),
		Classes:    sortedKeys(classSet),
	}
	for i, t := range sortedKeys(terms) {
		m.Vocabulary[t] = i
	}

	// smooth idf: ln((1+n)/(1+df)) + 1
	df := make([]float64, len(m.Vocabulary))
	for _, doc := range docs {
		seen := make(map[int]bool)
		for _, t := range doc {
			j := m.Vocabulary[t]
			if !seen[j] {
				seen[j] = true
				df[j]++
			}
		}
	}
	n := float64(len(samples))
	m.IDF = make([]float64, len(df))
	for j, d := range df {
		m.IDF[j] = math.Log((1+n)/(1+d)) + 1
	}

	classIndex := make(map[string]int, len(m.Classes))
	for k, c := range m.Classes {
		classIndex[c] = k
	}

	x := make([][]float64, len(samples))
	y := make([]int, len(samples))
	for i, doc := range docs {
		x[i] = m.vectorize(doc)
		y[i] = classIndex[samples[i].Category]
	}

	m.fit(x, y)
	return m, nil
}

// fit runs full-batch gradient descent on the mean cross-entropy plus an L2
// penalty on the weights.
func (m *Model) fit(x [][]float64, y []int) {
	k, v, n := len(m.Classes), len(m.IDF), float64(len(x))
	lambda := 1 / (regularisationC * n)

	m.Weights = make([][]float64, k)
	for c := range m.Weights {
		m.Weights[c] = make([]float64, v)
	}
	m.Bias = make([]float64, k)

	gradW := make([][]float64, k)
	for c := range gradW {
		gradW[c] = make([]float64, v)
	}
	gradB := make([]float64, k)

	for iter := 0; iter < trainingIterations; iter++ {
		for c := 0; c < k; c++ {
			for j := 0; j < v; j++ {
				gradW[c][j] = lambda * m.Weights[c][j]
			}
			gradB[c] = 0
		}

		for i, xi := range x {
			probs := m.probabilities(xi)
			for c := 0; c < k; c++ {
				delta := probs[c]
				if c == y[i] {
					delta--
				}
				delta /= n
				gradB[c] += delta
				for j, xv := range xi {
					if xv != 0 {
						gradW[c][j] += delta * xv
					}
				}
			}
		}

		for c := 0; c < k; c++ {
			for j := 0; j < v; j++ {
				m.Weights[c][j] -= learningRate * gradW[c][j]
			}
			m.Bias[c] -= learningRate * gradB[c]
		}
	}
}

// Predict implements Classifier.
func (m *Model) Predict(text string) (string, float64) {
	if len(m.Classes) == 0 {
		return "", 0
	}

	probs := m.probabilities(m.vectorize(tokenize(text)))
	best := 0
	for c := range probs {
		if probs[c] > probs[best] {
			best = c
		}
	}

	return m.Classes[best], math.Round(probs[best]*100) / 100
}

func (m *Model) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(m.IDF))
	for _, t := range tokens {
		if j, ok := m.Vocabulary[t]; ok {
			vec[j]++
		}
	}

	var norm float64
	for j := range vec {
		vec[j] *= m.IDF[j]
		norm += vec[j] * vec[j]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for j := range vec {
			vec[j] /= norm
		}
	}

	return vec
}

func (m *Model) probabilities(x []float64) []float64 {
	scores := make([]float64, len(m.Classes))
	maxScore := math.Inf(-1)
	for c := range scores {
		s := m.Bias[c]
		for j, xv := range x {
			if xv != 0 {
				s += m.Weights[c][j] * xv
			}
		}
		scores[c] = s
		maxScore = math.Max(maxScore, s)
	}

	var sum float64
	for c := range scores {
		scores[c] = math.Exp(scores[c] - maxScore)
		sum += scores[c]
	}
	for c := range scores {
		scores[c] /= sum
	}

	return scores
}

func (m *Model) validate() error {
	if len(m.Classes) == 0 || len(m.Weights) != len(m.Classes) || len(m.Bias) != len(m.Classes) {
		return fmt.Errorf("model has inconsistent class dimensions")
	}
	for _, row := range m.Weights {
		if len(row) != len(m.IDF) {
			return fmt.Errorf("model has inconsistent vocabulary dimensions")
		}
	}
	for _, j := range m.Vocabulary {
		if j < 0 || j >= len(m.IDF) {
			return fmt.Errorf("model vocabulary index %d out of range", j)
		}
	}
	return nil
}

func (m *Model) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadOrTrainModel reads the model at path, training and saving a fresh one
// from TrainingCorpus when the file does not exist yet. An empty path keeps
// the model in memory only.
func LoadOrTrainModel(path string) (*Model, error) {
	if path != "" {
		m, err := LoadModel(path)
		if err == nil {
			log.Printf("✅ Classifier model loaded from %s\n", path)
			return m, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	log.Println("🧠 Training classifier model...")
	m, err := TrainModel(TrainingCorpus)
	if err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}

	if path != "" {
		if err := m.Save(path); err != nil {
			return nil, err
		}
	}

	log.Println("✅ Classifier model trained successfully")
	return m, nil
}

func tokenize(text string) []string {
	var tokens []string
	for _, t := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if !stopWords[t] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
