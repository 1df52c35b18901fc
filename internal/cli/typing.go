package cli

import (
	"context"
	"io"
	"time"
)

// defaultTypingDelay is the base per-character pause of the streaming effect.
const defaultTypingDelay = 15 * time.Millisecond

// typeText writes s one rune at a time, pausing after each so the reply reads
// as if it were being typed. Sentence ends pause longest, then line breaks,
// then other punctuation; spaces pause briefly. A non-positive delay writes s
// at once. If ctx is cancelled the rest of s is written without pauses.
func typeText(ctx context.Context, w io.Writer, s string, delay time.Duration, sleep func(time.Duration)) {
	if delay <= 0 {
		_, _ = io.WriteString(w, s)
		return
	}
	for i, r := range s {
		if ctx.Err() != nil {
			_, _ = io.WriteString(w, s[i:])
			return
		}
		_, _ = io.WriteString(w, string(r))
		sleep(typingPause(r, delay))
	}
}

func typingPause(r rune, delay time.Duration) time.Duration {
	switch r {
	case '.', '!', '?':
		return delay * 4
	case '\n':
		return delay * 3
	case ',', ';', ':':
		return delay * 2
	case ' ':
		return delay / 2
	}
	return delay
}
