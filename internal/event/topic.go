package event

import "strings"

// ValidateTopic checks that a published topic has no empty segments and no
// wildcards.
func ValidateTopic(topic string) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	for _, seg := range strings.Split(topic, ".") {
		if seg == "" || seg == "*" || seg == "**" {
			return ErrInvalidTopic
		}
	}
	return nil
}

// ValidatePattern checks that a subscription pattern has no empty segments
// and that "**" only appears as the last segment.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return ErrInvalidTopic
	}
	segs := strings.Split(pattern, ".")
	for i, seg := range segs {
		if seg == "" {
			return ErrInvalidTopic
		}
		if seg == "**" && i != len(segs)-1 {
			return ErrInvalidTopic
		}
	}
	return nil
}

// Match reports whether topic matches pattern.
func Match(pattern, topic string) bool {
	return matchSegments(strings.Split(pattern, "."), strings.Split(topic, "."))
}

func matchSegments(pattern, topic []string) bool {
	for i, seg := range pattern {
		if seg == "**" {
			return true
		}
		if i >= len(topic) {
			return false
		}
		if seg != "*" && seg != topic[i] {
			return false
		}
	}
	return len(pattern) == len(topic)
}
