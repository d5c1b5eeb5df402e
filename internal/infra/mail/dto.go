package mail

type clientEmailData struct {
	ToName  string
	Message string
	From    string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	dialer   Dialer
}
