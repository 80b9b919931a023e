package email

const (
	subjectQuoteReceivedFmt    = "We received your quote request %s"
	subjectQuoteAdminNotifyFmt = "New quote request %s"
	subjectQuoteApprovedFmt    = "Your quote %s has been approved"
	subjectBookingConfirmed    = "Your appointment is confirmed"
	subjectBookingReminder     = "Reminder: your appointment is tomorrow"
	subjectBookingCancelled    = "Your appointment has been cancelled"
)
