package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/adminpanel/internal/client/services"
	"github.com/dmitrijs2005/adminpanel/internal/common"
)

const resendCommand = "resend"

// otpVerificationView asks for the emailed code until it verifies. An empty
// line returns to the login view.
func (a *App) otpVerificationView(ctx context.Context, _ Params) error {
	a.recovery.Start(ctx)
	fmt.Fprintln(a.out, "Enter the 6-digit code sent to your email.")
	fmt.Fprintf(a.out, "Type '%s' for a new code, or an empty line to go back.\n", resendCommand)

	for {
		code, err := getSimpleText(a.reader, "Code", a.out)
		if err != nil {
			return err
		}

		switch code {
		case "":
			a.router.Navigate(ctx, LoginPath)
			return nil
		case resendCommand:
			a.resendOTP(ctx)
			continue
		}

		grant, err := a.recovery.VerifyOTP(ctx, code)
		switch {
		case errors.Is(err, services.ErrOTPFormat):
			fmt.Fprintln(a.out, "Invalid OTP: Please enter all 6 digits")
		case errors.Is(err, services.ErrInvalidOTP):
			fmt.Fprintln(a.out, "Invalid OTP: The OTP you entered is incorrect. Please try again.")
		case err != nil:
			return err
		default:
			a.resetGrant = grant
			fmt.Fprintln(a.out, "OTP verified!")
			a.router.Navigate(ctx, NewPasswordPath)
			return nil
		}
	}
}

func (a *App) resendOTP(ctx context.Context) {
	if err := a.recovery.ResendOTP(ctx); errors.Is(err, services.ErrResendTooSoon) {
		fmt.Fprintf(a.out, "Resend code in %ds\n", ceilSeconds(a.recovery.Remaining(ctx)))
		return
	}
	fmt.Fprintln(a.out, "OTP resent! A new OTP has been sent to your email address.")
}

func ceilSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

// newPasswordView sets a new password after OTP verification. An empty
// password returns to the login view.
func (a *App) newPasswordView(ctx context.Context, _ Params) error {
	if a.resetGrant == "" {
		fmt.Fprintln(a.out, "Verify the code sent to your email first.")
		a.router.Navigate(ctx, OTPVerificationPath)
		return nil
	}

	fmt.Fprintln(a.out, "Set a new password (empty to cancel)")
	for {
		pwd, err := getPassword(a.out, "New password")
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			a.router.Navigate(ctx, LoginPath)
			return nil
		}

		checks := a.recovery.CheckPassword(string(pwd))
		a.printPasswordChecks(checks)

		confirm, err := getPassword(a.out, "Confirm password")
		if err != nil {
			common.WipeByteArray(pwd)
			return err
		}

		err = a.recovery.ResetPassword(ctx, a.resetGrant, string(pwd), string(confirm))
		common.WipeByteArray(pwd)
		common.WipeByteArray(confirm)

		switch {
		case errors.Is(err, services.ErrWeakPassword):
			fmt.Fprintln(a.out, "Invalid password: Password does not meet requirements")
		case errors.Is(err, services.ErrPasswordMismatch):
			fmt.Fprintln(a.out, "Passwords don't match: Please make sure both passwords are identical")
		case errors.Is(err, common.ErrInvalidToken):
			a.resetGrant = ""
			fmt.Fprintln(a.out, "Your verification has expired, request a new code.")
			a.router.Navigate(ctx, OTPVerificationPath)
			return nil
		case err != nil:
			return err
		default:
			a.resetGrant = ""
			fmt.Fprintln(a.out, "Password updated! Your password has been successfully updated.")
			a.router.Navigate(ctx, LoginPath)
			return nil
		}
	}
}

func (a *App) printPasswordChecks(c services.PasswordChecks) {
	rules := []struct {
		ok   bool
		text string
	}{
		{c.MinLength, "At least 8 characters"},
		{c.HasUpper, "One uppercase letter"},
		{c.HasLower, "One lowercase letter"},
		{c.HasNumber, "One number"},
		{c.HasSpecial, "One special character (" + services.SpecialCharacters + ")"},
	}
	for _, r := range rules {
		mark := " "
		if r.ok {
			mark = "x"
		}
		fmt.Fprintf(a.out, "  [%s] %s\n", mark, r.text)
	}
}
