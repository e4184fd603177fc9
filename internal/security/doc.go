// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

/*
Package security is the request security pipeline of the condominium API.

It composes five checks in a fixed order:

 1. Authentication: server-side session first, then a signed bearer token.
 2. Rate limiting: sliding window with lockout per (bucket, identifier).
 3. CSRF: per-session, per-action tokens on mutating methods.
 4. Role authorization: role hierarchy with per-route overrides.
 5. Ownership: non-admin principals only touch their own condominium.

[Pipeline.Execute] stops at the first failure. [Pipeline.Check] runs every
stage and returns a [Report] for diagnostics. [Pipeline.Guard] adapts the
pipeline to a chi middleware.

Every failure is an [apperr.AppError] whose Code is a [Kind]; use [KindOf]
to branch on it.

All state lives in a [kv.Store]; the components themselves are stateless and
safe for concurrent use.
*/
package security
