package service

import "careconnect/pkg/model"

// flagAliases maps a user's medical flag to the activity requirement that
// satisfies it. Aliased flags are hard requirements: the activity must
// explicitly support them, absence counts as unsupported.
var flagAliases = map[string]string{
	"wheelchair": "accessible",
}

// Compatible is the accessibility gate predicate, also used to filter
// activity listings per user. Pure, no side effects, evaluates every flag so
// the result is order-independent.
//
// A user flag set to true fails the match when the activity declares the
// corresponding requirement false, or, for aliased flags such as
// wheelchair/accessible, when the activity does not declare support at all.
// Flags absent on either side impose no constraint.
func Compatible(user *model.User, activity *model.Activity) bool {
	compatible := true

	for flag, needed := range user.MedicalFlags {
		if !needed {
			continue
		}

		if requirement, ok := flagAliases[flag]; ok {
			if !activity.Requirements[requirement] {
				compatible = false
			}
			continue
		}

		if supported, declared := activity.Requirements[flag]; declared && !supported {
			compatible = false
		}
	}

	return compatible
}
