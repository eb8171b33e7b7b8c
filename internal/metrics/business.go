package metrics

// IncrementCommentCreated increments the comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// AddCommentsRelinked counts ids restored to a post's comment list
func (m *Metrics) AddCommentsRelinked(n int) {
	if n <= 0 {
		return
	}
	m.safeExecute("AddCommentsRelinked", func() {
		m.CommentsRelinkedTotal.Add(float64(n))
	})
}

// RecordEventPublished counts one publish attempt on channel
func (m *Metrics) RecordEventPublished(channel string, err error) {
	m.safeExecute("RecordEventPublished", func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		m.EventsPublishedTotal.WithLabelValues(channel, result).Inc()
	})
}

// SetCommentsTotal sets total comments gauge
func (m *Metrics) SetCommentsTotal(count int64) {
	m.safeExecute("SetCommentsTotal", func() {
		m.CommentsTotal.Set(float64(count))
	})
}

// SetPostsTotal sets total posts gauge
func (m *Metrics) SetPostsTotal(count int64) {
	m.safeExecute("SetPostsTotal", func() {
		m.PostsTotal.Set(float64(count))
	})
}
