package ui

import (
	"fmt"
	"io"
	"strconv"

	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
)

// Failure is the user-facing report for a failed fetch.
type Failure struct {
	Title       string
	Description string
	// Detail is optional preformatted text, e.g. the decode error location.
	Detail string
	// Retryable is true when trying again may succeed.
	Retryable bool
	// NotFound is true when the requested item does not exist.
	NotFound bool
}

// DescribeFailure maps an error to its report.
func DescribeFailure(err error) Failure {
	switch ferrors.GetCode(err) {
	case ferrors.ErrCodeNetworkUnavailable:
		return Failure{
			Title:       "You are facing a Network Error",
			Description: "Please check your Internet connection and try again.",
			Retryable:   true,
		}

	case ferrors.ErrCodeNetworkTimeout:
		return Failure{
			Title:       "You are facing a Timeout issue",
			Description: "It takes too long to get a response, please check your Internet connection and try again.",
			Detail:      messageOf(err),
			Retryable:   true,
		}

	case ferrors.ErrCodeBadStatus, ferrors.ErrCodeServerError:
		status, _ := strconv.Atoi(ferrors.GetDetail(err, "status"))
		side, role := "Client", "frontend"
		if status >= 500 {
			side, role = "Server", "backend"
		}
		return Failure{
			Title:       fmt.Sprintf("You are facing an unexpected %s side Error %d!", side, status),
			Description: fmt.Sprintf("Our %s developers are fixing the issue.", role),
			Retryable:   ferrors.IsRetryable(err),
		}

	case ferrors.ErrCodeResponseDecode:
		return Failure{
			Title:       "You are facing an unexpected Response Body Error!",
			Description: "Something went wrong and the endpoint answered with data we do not understand.",
			Detail:      messageOf(err),
		}

	case ferrors.ErrCodeFeedbackNotFound:
		return Failure{
			Title:       "404",
			Description: "This feedback is missing",
			NotFound:    true,
		}

	case ferrors.ErrCodeConfigInvalid:
		return Failure{
			Title:       "Oops... we broke something...",
			Description: "It looks like the app hits a wrong endpoint.",
			Detail:      messageOf(err),
		}

	default:
		return Failure{
			Title:       "Something went wrong",
			Description: messageOf(err),
			Retryable:   true,
		}
	}
}

// RenderFailure writes the report for err.
func RenderFailure(w io.Writer, err error, styles Styles) error {
	f := DescribeFailure(err)

	if _, werr := fmt.Fprintln(w, styles.Error.Render(f.Title)); werr != nil {
		return werr
	}
	if f.Description != "" {
		_, _ = fmt.Fprintln(w, f.Description)
	}
	if f.Detail != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.Dim.Render(f.Detail))
	}
	if f.Retryable {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.Label.Render("Try again in a moment."))
	}
	return nil
}

func messageOf(err error) string {
	if err == nil {
		return ""
	}
	if fe, ok := ferrors.As(err); ok {
		return fe.Message
	}
	return err.Error()
}
