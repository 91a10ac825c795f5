package v1

type AtiempoClient struct {
	Transport  *Transport
	Attendance *AttendanceEndpoint
}

// NewAtiempoClient initializes the API client
func NewAtiempoClient(baseURL string, token string) *AtiempoClient {
	t := NewTransport(baseURL, token)
	return &AtiempoClient{
		Transport:  t,
		Attendance: &AttendanceEndpoint{transport: t},
	}
}
