// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// CodeNonceLength is the byte length of the random nonce a confirmation
	// code is derived from. It is rotated on every signup and every exchange.
	CodeNonceLength = 16

	// SignupAttemptWindow is the period over which signup attempts per
	// username are counted.
	SignupAttemptWindow = time.Hour

	// ConfirmationSubject is the subject line of the confirmation mail.
	ConfirmationSubject = "Yamdb confirmation code"
)
