package core

// RunConfig is the fully resolved configuration one run consumes. After
// ResolveRunConfig returns, the pipeline prompts the operator only at the
// two designed interaction points: the message-text default and the
// per-group send confirmation.
type RunConfig struct {
	Server    string
	Sender    Address
	CC        []Address
	BCC       []Address
	Subject   string
	DryRun    bool
	LogFields []string
}

// RunInputs carries the raw values gathered from flags, the config file and
// the environment before any prompting.
type RunInputs struct {
	Server        string
	From          string
	EnvFrom       string // $EMAIL, offered as the From default when prompting
	CC            []string
	BCC           []string
	Subject       string
	SubjectPrefix string
	DryRun        bool
}

// ResolveRunConfig fills every missing run setting, asking the operator for
// the ones that have no flag, config or environment value. Address text is
// parsed here so a malformed address aborts before the pipeline starts.
func ResolveRunConfig(in RunInputs, prompter Prompter) (*RunConfig, error) {
	server := in.Server
	if server == "" {
		var err error
		server, err = prompter.Ask("SMTP server", "", nil)
		if err != nil {
			return nil, err
		}
	}

	fromText := in.From
	if fromText == "" {
		var err error
		fromText, err = prompter.Ask("From", in.EnvFrom, nil)
		if err != nil {
			return nil, err
		}
	}
	sender, err := SplitAddress(fromText)
	if err != nil {
		return nil, err
	}

	cc, err := SplitAddressList(in.CC)
	if err != nil {
		return nil, err
	}
	bcc, err := SplitAddressList(in.BCC)
	if err != nil {
		return nil, err
	}

	subject := in.Subject
	if subject == "" {
		subject, err = prompter.Ask("Subject", "", nil)
		if err != nil {
			return nil, err
		}
	}
	if in.SubjectPrefix != "" {
		subject = in.SubjectPrefix + " " + subject
	}

	return &RunConfig{
		Server:  server,
		Sender:  sender,
		CC:      cc,
		BCC:     bcc,
		Subject: subject,
		DryRun:  in.DryRun,
	}, nil
}
