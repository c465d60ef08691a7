package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mortgauge/internal/apperr"
	"mortgauge/internal/repository"
)

// parseListQuery builds a repository.ListQuery from the request's query
// string. Only limit, offset, search, ordering, and the given filter keys are
// accepted; anything else is a validation error rather than being silently
// ignored. Sort field names are validated downstream against the entity's
// whitelist.
func parseListQuery(c *fiber.Ctx, defaultLimit, maxLimit int, filterKeys ...string) (repository.ListQuery, error) {
	lq := repository.ListQuery{
		Filters: map[string]string{},
		Limit:   defaultLimit,
	}

	allowed := map[string]bool{
		"limit":    true,
		"offset":   true,
		"search":   true,
		"ordering": true,
	}
	for _, k := range filterKeys {
		allowed[k] = true
	}

	for key, val := range c.Queries() {
		if !allowed[key] {
			return lq, apperr.Validation(key, "unknown query parameter")
		}
		switch key {
		case "limit":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return lq, apperr.Validation("limit", "must be a non-negative integer")
			}
			if n > 0 {
				lq.Limit = n
			}
		case "offset":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return lq, apperr.Validation("offset", "must be a non-negative integer")
			}
			lq.Offset = n
		case "search":
			lq.Search = val
		case "ordering":
			for _, field := range strings.Split(val, ",") {
				field = strings.TrimSpace(field)
				if field == "" {
					continue
				}
				key := repository.SortKey{Field: field}
				if strings.HasPrefix(field, "-") {
					key = repository.SortKey{Field: field[1:], Desc: true}
				}
				lq.Sort = append(lq.Sort, key)
			}
		default:
			lq.Filters[key] = val
		}
	}

	if lq.Limit > maxLimit {
		lq.Limit = maxLimit
	}
	return lq, nil
}
