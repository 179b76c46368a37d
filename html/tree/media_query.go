package tree

import (
	"strings"

	"github.com/benoitkugler/webstyle/css/parser"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/utils"
)

// MediaQuery is a media type, optionally negated.
// Media features are not supported.
type MediaQuery struct {
	Type string
	Not  bool
}

func (mq MediaQuery) String() string {
	if mq.Not {
		return "not " + mq.Type
	}
	return mq.Type
}

// evaluateMediaQuery returns the boolean evaluation of `queryList` for the given
// `deviceMediaType`. An empty list matches every device.
func evaluateMediaQuery(queryList []MediaQuery, deviceMediaType string) bool {
	if len(queryList) == 0 {
		return true
	}
	for _, query := range queryList {
		match := query.Type == "all" || query.Type == deviceMediaType
		if match != query.Not {
			return true
		}
	}
	return false
}

// parseMediaQuery parses a comma separated list of media types.
// Queries using media features are dropped.
func parseMediaQuery(prelude string) []MediaQuery {
	tokens := parser.Tokenize(prelude)
	if len(parser.RemoveWhitespace(tokens)) == 0 {
		return []MediaQuery{{Type: "all"}}
	}
	var media []MediaQuery
	for _, part := range parser.SplitOnComma(tokens) {
		part = parser.RemoveWhitespace(part)
		var query MediaQuery
		if len(part) == 2 && part[0].Kind == parser.Ident {
			switch utils.AsciiLower(part[0].Value) {
			case "not":
				query.Not = true
				part = part[1:]
			case "only":
				part = part[1:]
			}
		}
		if len(part) == 1 && part[0].Kind == parser.Ident {
			query.Type = utils.AsciiLower(part[0].Value)
			media = append(media, query)
			continue
		}
		logger.WarningLogger.Warnf("Expected a media type, got %s", strings.TrimSpace(parser.Serialize(part)))
	}
	if media == nil {
		// only unsupported queries: never match
		return []MediaQuery{{Type: "all", Not: true}}
	}
	return media
}
