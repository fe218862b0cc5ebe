package iso8583

// Message type indicators used by the helpers in this package.
const (
	MTIAuthorizationRequest  = "0100"
	MTIAuthorizationResponse = "0110"
	MTIFinancialRequest      = "0200"
	MTIFinancialResponse     = "0210"
	MTIReversalRequest       = "0400"
	MTIReversalResponse      = "0410"
	MTINetworkRequest        = "0800"
	MTINetworkResponse       = "0810"
)

// Well known data elements.
const (
	FieldPAN              = 2
	FieldProcessingCode   = 3
	FieldAmount           = 4
	FieldTransmissionTime = 7
	FieldSTAN             = 11
	FieldTrack2           = 35
	FieldResponseCode     = 39
	FieldICCData          = 55
)

func fixedN(field, length int, desc string) FieldRule {
	return FieldRule{Field: field, Length: LengthFixed, MaxLen: length, Content: ContentNumeric, Description: desc}
}

func fixedANS(field, length int, desc string) FieldRule {
	return FieldRule{Field: field, Length: LengthFixed, MaxLen: length, Content: ContentAlphanumeric, Description: desc}
}

func fixedB(field, length int, desc string) FieldRule {
	return FieldRule{Field: field, Length: LengthFixed, MaxLen: length, Content: ContentBinary, Description: desc}
}

func varField(field int, lc LengthClass, cc ContentClass, maxLen int, desc string) FieldRule {
	return FieldRule{Field: field, Length: lc, MaxLen: maxLen, Content: cc, Description: desc}
}

// iso87Rules is the ISO 8583:1987 data element table with ASCII lengths.
// Field 1 is the bitmap continuation flag and has no rule.
var iso87Rules = []FieldRule{
	varField(2, LengthLLVAR, ContentNumeric, 19, "Primary Account Number"),
	fixedN(3, 6, "Processing Code"),
	fixedN(4, 12, "Amount, Transaction"),
	fixedN(5, 12, "Amount, Settlement"),
	fixedN(6, 12, "Amount, Cardholder Billing"),
	fixedN(7, 10, "Transmission Date & Time"),
	fixedN(8, 8, "Amount, Cardholder Billing Fee"),
	fixedN(9, 8, "Conversion Rate, Settlement"),
	fixedN(10, 8, "Conversion Rate, Cardholder Billing"),
	fixedN(11, 6, "System Trace Audit Number"),
	fixedN(12, 6, "Time, Local Transaction"),
	fixedN(13, 4, "Date, Local Transaction"),
	fixedN(14, 4, "Date, Expiration"),
	fixedN(15, 4, "Date, Settlement"),
	fixedN(16, 4, "Date, Conversion"),
	fixedN(17, 4, "Date, Capture"),
	fixedN(18, 4, "Merchant Type"),
	fixedN(19, 3, "Acquiring Institution Country Code"),
	fixedN(20, 3, "PAN Extended, Country Code"),
	fixedN(21, 3, "Forwarding Institution Country Code"),
	fixedN(22, 3, "Point of Service Entry Mode"),
	fixedN(23, 3, "Application PAN Sequence Number"),
	fixedN(24, 3, "Network International Identifier"),
	fixedN(25, 2, "Point of Service Condition Code"),
	fixedN(26, 2, "Point of Service Capture Code"),
	fixedN(27, 1, "Authorizing Identification Response Length"),
	fixedANS(28, 9, "Amount, Transaction Fee"),
	fixedANS(29, 9, "Amount, Settlement Fee"),
	fixedANS(30, 9, "Amount, Transaction Processing Fee"),
	fixedANS(31, 9, "Amount, Settlement Processing Fee"),
	varField(32, LengthLLVAR, ContentNumeric, 11, "Acquiring Institution Identification Code"),
	varField(33, LengthLLVAR, ContentNumeric, 11, "Forwarding Institution Identification Code"),
	varField(34, LengthLLVAR, ContentAlphanumeric, 28, "Primary Account Number, Extended"),
	varField(35, LengthLLVAR, ContentTrack, 37, "Track 2 Data"),
	varField(36, LengthLLLVAR, ContentTrack, 104, "Track 3 Data"),
	fixedANS(37, 12, "Retrieval Reference Number"),
	fixedANS(38, 6, "Authorization Identification Response"),
	fixedANS(39, 2, "Response Code"),
	fixedANS(40, 3, "Service Restriction Code"),
	fixedANS(41, 8, "Card Acceptor Terminal Identification"),
	fixedANS(42, 15, "Card Acceptor Identification Code"),
	fixedANS(43, 40, "Card Acceptor Name/Location"),
	varField(44, LengthLLVAR, ContentAlphanumeric, 25, "Additional Response Data"),
	varField(45, LengthLLVAR, ContentAlphanumeric, 76, "Track 1 Data"),
	varField(46, LengthLLLVAR, ContentAlphanumeric, 999, "Additional Data - ISO"),
	varField(47, LengthLLLVAR, ContentAlphanumeric, 999, "Additional Data - National"),
	varField(48, LengthLLLVAR, ContentAlphanumeric, 999, "Additional Data - Private"),
	fixedANS(49, 3, "Currency Code, Transaction"),
	fixedANS(50, 3, "Currency Code, Settlement"),
	fixedANS(51, 3, "Currency Code, Cardholder Billing"),
	fixedB(52, 8, "Personal Identification Number Data"),
	fixedN(53, 16, "Security Related Control Information"),
	varField(54, LengthLLLVAR, ContentAlphanumeric, 120, "Additional Amounts"),
	varField(55, LengthLLLVAR, ContentBinary, 255, "ICC Data"),
	varField(56, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved ISO"),
	varField(57, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved National"),
	varField(58, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved National"),
	varField(59, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved National"),
	varField(60, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved Private"),
	varField(61, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved Private"),
	varField(62, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved Private"),
	varField(63, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved Private"),
	fixedB(64, 8, "Message Authentication Code"),

	fixedB(65, 1, "Extended Bitmap Indicator"),
	fixedN(66, 1, "Settlement Code"),
	fixedN(67, 2, "Extended Payment Code"),
	fixedN(68, 3, "Receiving Institution Country Code"),
	fixedN(69, 3, "Settlement Institution Country Code"),
	fixedN(70, 3, "Network Management Information Code"),
	fixedN(71, 4, "Message Number"),
	fixedN(72, 4, "Message Number, Last"),
	fixedN(73, 6, "Date, Action"),
	fixedN(74, 10, "Credits, Number"),
	fixedN(75, 10, "Credits, Reversal Number"),
	fixedN(76, 10, "Debits, Number"),
	fixedN(77, 10, "Debits, Reversal Number"),
	fixedN(78, 10, "Transfer, Number"),
	fixedN(79, 10, "Transfer, Reversal Number"),
	fixedN(80, 10, "Inquiries, Number"),
	fixedN(81, 10, "Authorizations, Number"),
	fixedN(82, 12, "Credits, Processing Fee Amount"),
	fixedN(83, 12, "Credits, Transaction Fee Amount"),
	fixedN(84, 12, "Debits, Processing Fee Amount"),
	fixedN(85, 12, "Debits, Transaction Fee Amount"),
	fixedN(86, 16, "Credits, Amount"),
	fixedN(87, 16, "Credits, Reversal Amount"),
	fixedN(88, 16, "Debits, Amount"),
	fixedN(89, 16, "Debits, Reversal Amount"),
	fixedN(90, 42, "Original Data Elements"),
	fixedANS(91, 1, "File Update Code"),
	fixedANS(92, 2, "File Security Code"),
	fixedANS(93, 5, "Response Indicator"),
	fixedANS(94, 7, "Service Indicator"),
	fixedANS(95, 42, "Replacement Amounts"),
	fixedB(96, 8, "Message Security Code"),
	fixedANS(97, 17, "Amount, Net Settlement"),
	fixedANS(98, 25, "Payee"),
	varField(99, LengthLLVAR, ContentNumeric, 11, "Settlement Institution Identification Code"),
	varField(100, LengthLLVAR, ContentNumeric, 11, "Receiving Institution Identification Code"),
	varField(101, LengthLLVAR, ContentAlphanumeric, 17, "File Name"),
	varField(102, LengthLLVAR, ContentAlphanumeric, 28, "Account Identification 1"),
	varField(103, LengthLLVAR, ContentAlphanumeric, 28, "Account Identification 2"),
	varField(104, LengthLLLVAR, ContentAlphanumeric, 100, "Transaction Description"),
	varField(105, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for ISO Use"),
	varField(106, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for ISO Use"),
	varField(107, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for ISO Use"),
	varField(108, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for ISO Use"),
	varField(109, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for ISO Use"),
	varField(110, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for ISO Use"),
	varField(111, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for ISO Use"),
	varField(112, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for National Use"),
	varField(113, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for National Use"),
	varField(114, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for National Use"),
	varField(115, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for National Use"),
	varField(116, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for National Use"),
	varField(117, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for National Use"),
	varField(118, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for National Use"),
	varField(119, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for National Use"),
	varField(120, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for Private Use"),
	varField(121, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for Private Use"),
	varField(122, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for Private Use"),
	varField(123, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for Private Use"),
	varField(124, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for Private Use"),
	varField(125, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for Private Use"),
	varField(126, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for Private Use"),
	varField(127, LengthLLLVAR, ContentAlphanumeric, 999, "Reserved for Private Use"),
	fixedB(128, 8, "Message Authentication Code"),
}

// DefaultRegistry returns a fresh registry holding the ISO 8583:1987 table.
func DefaultRegistry() *Registry {
	return MustRegistry("ISO 8583:1987 ASCII", iso87Rules...)
}
