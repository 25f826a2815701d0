package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Apple iPhone 15", FirstLine("\n   \n  Apple iPhone 15  \n₹79,999\n"))
	assert.Equal(t, "single", FirstLine("single"))
	assert.Equal(t, "", FirstLine("  \n \n"))
	assert.Equal(t, "", FirstLine(""))
	assert.Equal(t, "Kurti", FirstLine("\r\n\tKurti\r\n"))
}

func TestFirstLineManyBlankLines(t *testing.T) {
	text := strings.Repeat("\n", 200000) + "Printed Kurti Set"

	start := time.Now()
	assert.Equal(t, "Printed Kurti Set", FirstLine(text))
	assert.Less(t, time.Since(start), time.Second)
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "Women Kurti Set", NormalizeSpace("  Women\n\tKurti   Set "))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Apple iPhone 15 (128GB)", "iphone 15"))
	assert.False(t, ContainsFold("Apple iPhone 14", "iphone 15"))
}
