package markdown

import "net/url"

// Action is a host-side command encoded in a pseudo-URL
type Action int

const (
	ActionNone Action = iota
	ActionCopyAll
	ActionCopyCode
)

const (
	actionScheme  = "http"
	copyAllHost   = "copyAll"
	copyCodeHost  = "copyCode"
	copyCodeParam = "q"

	// copyLabel is the visible text of every copy affordance
	copyLabel = "copy\n"
)

// CopyAllURL returns the pseudo-URL that asks the host to copy the whole document
func CopyAllURL() string {
	u := url.URL{Scheme: actionScheme, Host: copyAllHost, Path: "/"}
	return u.String()
}

// CopyCodeURL returns the pseudo-URL that asks the host to copy code.
// The same code always yields the same URL.
func CopyCodeURL(code string) string {
	u := url.URL{
		Scheme:   actionScheme,
		Host:     copyCodeHost,
		Path:     "/",
		RawQuery: url.Values{copyCodeParam: {code}}.Encode(),
	}
	return u.String()
}

// ParseAction recognizes a pseudo-URL produced by CopyAllURL or CopyCodeURL.
// For ActionCopyCode the decoded code text is returned as payload.
func ParseAction(link string) (Action, string) {
	u, err := url.Parse(link)
	if err != nil || u.Scheme != actionScheme {
		return ActionNone, ""
	}
	switch u.Host {
	case copyAllHost:
		return ActionCopyAll, ""
	case copyCodeHost:
		return ActionCopyCode, u.Query().Get(copyCodeParam)
	}
	return ActionNone, ""
}

func (a Action) String() string {
	switch a {
	case ActionCopyAll:
		return "copy-all"
	case ActionCopyCode:
		return "copy-code"
	}
	return "none"
}

func copyAllRun() Run {
	return Run{Text: copyLabel, Attrs: Attrs{Link: CopyAllURL(), Align: AlignRight}}
}

func copyCodeRun(code string) Run {
	return Run{Text: copyLabel, Attrs: Attrs{Link: CopyCodeURL(code), Align: AlignRight}}
}
