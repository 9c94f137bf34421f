package service

import "fmt"

// Cache keys are namespaced by logical entity so admin mutations can
// invalidate everything test-related with the "test*" prefix.
const (
	testListCacheKey = "tests:list"
	testCachePrefix  = "test*"
)

func testCacheKey(testID uint) string {
	return fmt.Sprintf("test:%d", testID)
}

func testQuestionsCacheKey(testID uint) string {
	return fmt.Sprintf("test-questions:%d", testID)
}

func testDetailCacheKey(testID uint) string {
	return fmt.Sprintf("test-detail:%d", testID)
}
