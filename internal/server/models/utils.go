package models

import (
	"fmt"
	"strconv"
	"strings"
)

// parseIdList parses the comma-joined output of GROUP_CONCAT into ids
func parseIdList(joined string) ([]int64, error) {
	ids := []int64{}
	if joined == "" {
		return ids, nil
	}
	for _, part := range strings.Split(joined, ",") {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse id[%s]: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
