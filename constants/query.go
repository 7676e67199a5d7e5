package constants

// ReasonForChangePlaceholder is the line in DefaultQuery that gets rewritten once the
// enquiry type has been determined.
const ReasonForChangePlaceholder = "Reason for Change: (Either 'Amendment' or 'New Enquiry' depending on the context of the email)"

// DefaultQuery asks the completion oracle for every canonical parameter, one per line,
// label-anchored so the free-text reconciler can scan the answer.
const DefaultQuery = `Please extract the following design parameters from the provided content.
Respond with one parameter per line in exactly the format "Name: value".
If a parameter cannot be determined, respond with "Name: Not found".

Post Code: (of the project location)
Drawing Reference: (the drawing or TP reference number, including any revision suffix)
Drawing Title: (usually the project name or location)
Revision: (the drawing revision letter or number)
Date Received: (the date the request was received, YYYY-MM-DD)
Company: (the company sending the enquiry)
Contact: (the person sending the enquiry)
` + ReasonForChangePlaceholder + `
Surveyor: (the surveyor named on the enquiry, if any)
Target U-Value: (the required thermal transmittance, W/m2K)
Target Min U-Value: (the minimum acceptable U-value, if stated)
Fall of Tapered: (the tapered insulation fall, e.g. 1:60)
Tapered Insulation: (the insulation product or board type requested)
Decking: (the roof deck construction or material)`
