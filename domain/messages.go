package domain

// Code names a user facing message. Clients match on the message text, so the
// texts are part of the API.
type Code string

// Success codes
const (
	CodeCredentialsMatched Code = "CREDENTIALS_MATCHED"
	CodeCredentialsRemoved Code = "CREDENTIALS_REMOVED"
	CodeRecordRetrieved    Code = "RECORD_RETRIEVED"
	CodeRecordCreated      Code = "RECORD_CREATED"
	CodeRecordUpdated      Code = "RECORD_UPDATED"
	CodeRecordDeleted      Code = "RECORD_DELETED"
	CodeOTPGenerated       Code = "OTP_GENERATED"
	CodeCurrentFlatUpdated Code = "CURRENT_FLAT_UPDATED"
	CodeUserCheckIn        Code = "USER_CHECKIN"
	CodeUserCheckOut       Code = "USER_CHECKOUT"
	CodeCheckInNotDone     Code = "CHECKIN_NOT_DONE"
	CodeCheckInDone        Code = "CHECKIN_DONE"
	CodeCheckOutDone       Code = "CHECKOUT_DONE"
	CodeServiceRequest     Code = "SERVICE_REQUEST"
	CodeStatusUpdated      Code = "STATUS_UPDATED"
	CodeEmployeeAssigned   Code = "EMPLOYEE_ASSIGNED"
	CodeRequestCompleted   Code = "SERVICE_REQUEST_MARKED_COMPLETED"
	CodePaymentReconciled  Code = "PAYMENT_RECONCILED"
	CodePaymentAbandoned   Code = "PAYMENT_ABANDONED"
	CodePushTokenSaved     Code = "PUSH_TOKEN_SAVED"
	CodeCommitteeSeatGrant Code = "COMMITTEE_SEAT_GRANTED"
)

// Error codes
const (
	CodeOTPMismatch             Code = "OTP_MISMATCH"
	CodeBadRequest              Code = "BAD_REQUEST"
	CodeNotFound                Code = "NOT_FOUND"
	CodeForbidden               Code = "FORBIDDEN"
	CodeUnauthorized            Code = "UNAUTHORIZED"
	CodeInvalidResponse         Code = "INVALID_RESPONSE"
	CodeInvalidRoleSelection    Code = "INVALID_ROLE_SELECTION"
	CodeDuplicateRecord         Code = "DUPLICATE_RECORD"
	CodeCurrentFlatNotFound     Code = "CURRENT_FLAT_NOT_FOUND"
	CodeNotValidGuardRecord     Code = "NOT_VALID_ESTABLISHMENT_GUARD_RECORD"
	CodeNotValidCommitteeRecord Code = "NOT_VALID_MANAGEMENT_COMMITTEE_RECORD"
	CodeInvalidGeomapping       Code = "INVALID_GEOMAPPING"
	CodeInvalidCheckIn          Code = "INVALID_CHECKIN"
	CodeRepeatedCheckIn         Code = "REPEATED_CHECKIN"
	CodeRepeatedCheckOut        Code = "REPEATED_CHECKOUT"
	CodeCheckInRequired         Code = "CHECKIN_REQUIRED"
	CodeInvalidRequestedDate    Code = "INVALID_REQUESTED_DATE"
	CodeInvalidRequestedTime    Code = "INVALID_REQUESTED_TIME"
	CodeNoSlots                 Code = "NO_SLOTS"
	CodePastDate                Code = "PAST_DATE"
	CodeInvalidRating           Code = "INVALID_RATING"
	CodeInvalidStatus           Code = "INVALID_STATUS"
	CodeOTPThrottled            Code = "OTP_THROTTLED"
	CodeInvalidEndTime          Code = "INVALID_END_TIME"
	CodeInvalidDayOfWeek        Code = "INVALID_DAY_OF_WEEK"
	CodeInvalidExclusionDate    Code = "INVALID_EXCLUSION_DATE"
	CodeSomethingWentWrong      Code = "SOMETHING_WENT_WRONG"
)

var messages = map[Code]string{
	CodeCredentialsMatched: "Login successful.",
	CodeCredentialsRemoved: "Logout successful.",
	CodeRecordRetrieved:    "The record was successfully retrieved.",
	CodeRecordCreated:      "The record was successfully created.",
	CodeRecordUpdated:      "The record was successfully updated.",
	CodeRecordDeleted:      "The record was successfully deleted.",
	CodeOTPGenerated:       "The otp has been sent to your phone successfully.",
	CodeCurrentFlatUpdated: "Your active flat has been successfully selected.",
	CodeUserCheckIn:        "The user was successfully checked-in.",
	CodeUserCheckOut:       "The user was successfully checked-out.",
	CodeCheckInNotDone:     "Check-in has not been done for today.",
	CodeCheckInDone:        "Check-in has been done for today.",
	CodeCheckOutDone:       "Check-out has been done for today.",
	CodeServiceRequest:     "Service Request.",
	CodeStatusUpdated:      "Service Request status updated.",
	CodeEmployeeAssigned:   "Employee assigned.",
	CodeRequestCompleted:   "Service request completed.",
	CodePaymentReconciled:  "Payment status recorded.",
	CodePaymentAbandoned:   "Pending service request has been cancelled.",
	CodePushTokenSaved:     "Push notification token saved.",
	CodeCommitteeSeatGrant: "Management committee seat granted.",

	CodeOTPMismatch:             "OTP did not matched. Please try again.",
	CodeBadRequest:              "Bad request.",
	CodeNotFound:                "Resource not found.",
	CodeForbidden:               "Not authenticated.",
	CodeUnauthorized:            "Authentication credentials were not provided or are invalid.",
	CodeInvalidResponse:         "The detail submitted does not appear to be valid. Please try again.",
	CodeInvalidRoleSelection:    "You must select atleast one valid role for this user.",
	CodeDuplicateRecord:         "The record that you are attempting to create already exists.",
	CodeCurrentFlatNotFound:     "Current flat is not selected.",
	CodeNotValidGuardRecord:     "You are not an active establishment guard user.",
	CodeNotValidCommitteeRecord: "You are not an active management committee user.",
	CodeInvalidGeomapping:       "You are not at the required establishment's location.",
	CodeInvalidCheckIn:          "Please check-out first before you check-in again.",
	CodeRepeatedCheckIn:         "You are not allowed to check-in again for the day.",
	CodeRepeatedCheckOut:        "You are not allowed to check-out again for the day.",
	CodeCheckInRequired:         "Please do check-in to perform this operation.",
	CodeInvalidRequestedDate:    "The organization is not working on requested date.",
	CodeInvalidRequestedTime:    "The organization is not available on requested time.",
	CodeNoSlots:                 "There is no slots for requested service.",
	CodePastDate:                "You can not request on the past date.",
	CodeInvalidRating:           "The rating must be between 1 and 5.",
	CodeInvalidStatus:           "The requested status is not valid.",
	CodeOTPThrottled:            "Please wait before requesting a new otp.",
	CodeInvalidEndTime:          "The end time must be after the start time.",
	CodeInvalidDayOfWeek:        "The day of week must be between 1 and 7.",
	CodeInvalidExclusionDate:    "The exclusion date must not be in past.",
	CodeSomethingWentWrong:      "Something went wrong. Please try again.",
}

// Message returns the text for the code, or the code itself when unknown.
func (c Code) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return string(c)
}
