package metrics

// IncrementPostCreated increments the post creation counter
func (m *Metrics) IncrementPostCreated() {
	m.safeExecute("IncrementPostCreated", func() {
		m.PostsCreatedTotal.Inc()
	})
}

// IncrementPostUpdated increments the post update counter
func (m *Metrics) IncrementPostUpdated() {
	m.safeExecute("IncrementPostUpdated", func() {
		m.PostsUpdatedTotal.Inc()
	})
}

// IncrementPostDeleted increments the post deletion counter
func (m *Metrics) IncrementPostDeleted() {
	m.safeExecute("IncrementPostDeleted", func() {
		m.PostsDeletedTotal.Inc()
	})
}

// IncrementAttachmentStored increments the stored-upload counter
func (m *Metrics) IncrementAttachmentStored() {
	m.safeExecute("IncrementAttachmentStored", func() {
		m.AttachmentsStoredTotal.Inc()
	})
}

// IncrementAttachmentDeleted increments the deleted-attachment counter
func (m *Metrics) IncrementAttachmentDeleted() {
	m.safeExecute("IncrementAttachmentDeleted", func() {
		m.AttachmentsDeletedTotal.Inc()
	})
}
