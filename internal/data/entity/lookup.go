package entity

type Genre Lookup

type AudienceType Lookup

type PaymentMethod Lookup
